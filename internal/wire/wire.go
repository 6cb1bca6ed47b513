package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version    byte = 1
	KindString byte = 1
	KindList   byte = 2
)

var (
	ErrCorrupt = errors.New("replaycache: corrupt entry")
	magic4     = [...]byte{'R', 'P', 'L', 'C'}
)

const hdr = 4 + 1 + 1

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Kind reports the entry kind of an encoded value.
func Kind(b []byte) (byte, error) {
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return 0, ErrCorrupt
	}
	switch b[5] {
	case KindString, KindList:
		return b[5], nil
	}
	return 0, ErrCorrupt
}

// String: magic(4) | ver(1) | kind(1=string) | vlen(u32 be) | payload(vlen)
func EncodeString(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdr + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(KindString)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// DecodeString returns a subslice of b; callers that hand the payload out must copy it.
func DecodeString(b []byte) ([]byte, error) {
	if len(b) < hdr+4 || !hasMagic(b) || b[4] != version || b[5] != KindString {
		return nil, ErrCorrupt
	}
	off := hdr
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // no trailing bytes
		return nil, ErrCorrupt
	}
	return b[off : off+vlen], nil
}

// List:
//
//	magic(4) | ver(1) | kind(2=list) | n(u32 be)
//	vlen(u32 be) | payload(vlen) * n
func EncodeList(items [][]byte) []byte {
	total := hdr + 4
	for _, it := range items {
		total += 4 + len(it)
	}

	var buf bytes.Buffer
	buf.Grow(total)

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(KindList)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(items)))
	buf.Write(u4[:])

	for _, it := range items {
		binary.BigEndian.PutUint32(u4[:], uint32(len(it)))
		buf.Write(u4[:])
		buf.Write(it)
	}
	return buf.Bytes()
}

// DecodeList returns subslices of b for every element.
func DecodeList(b []byte) ([][]byte, error) {
	if len(b) < hdr+4 || !hasMagic(b) || b[4] != version || b[5] != KindList {
		return nil, ErrCorrupt
	}
	off := hdr

	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	// every element carries at least a 4-byte length; reject bogus n before allocating
	if n < 0 || n > (len(b)-off)/4 {
		return nil, ErrCorrupt
	}

	items := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		if off+4 > len(b) {
			return nil, ErrCorrupt
		}
		vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if vlen < 0 || vlen > len(b)-off {
			return nil, ErrCorrupt
		}
		items = append(items, b[off:off+vlen])
		off += vlen
	}
	if off != len(b) {
		return nil, ErrCorrupt
	}
	return items, nil
}
