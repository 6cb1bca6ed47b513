package wire

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestStringRoundTrip(t *testing.T) {
	for _, p := range [][]byte{nil, []byte("hello"), {0, 1, 2, 3}} {
		enc := EncodeString(p)
		got, err := DecodeString(enc)
		if err != nil {
			t.Fatalf("DecodeString: %v", err)
		}
		if !bytes.Equal(got, p) {
			t.Fatalf("payload mismatch: got %x want %x", got, p)
		}
		k, err := Kind(enc)
		if err != nil || k != KindString {
			t.Fatalf("Kind: %d err=%v", k, err)
		}
	}
}

func TestStringCorruptHeadersAndLengths(t *testing.T) {
	enc := EncodeString([]byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, err := DecodeString(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, err := DecodeString(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// wrong kind
	badKind := append([]byte(nil), enc...)
	badKind[5] = KindList
	if _, err := DecodeString(badKind); err == nil {
		t.Fatalf("expected error on bad kind")
	}

	// vlen beyond buffer (offset 6..9)
	tooLong := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(tooLong[6:10], uint32(len("abc")+1))
	if _, err := DecodeString(tooLong); err == nil {
		t.Fatalf("expected error on vlen beyond buffer")
	}

	// trailing bytes
	if _, err := DecodeString(append(append([]byte(nil), enc...), 0xDE)); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestListRoundTrip(t *testing.T) {
	cases := [][][]byte{
		nil,
		{[]byte("x")},
		{[]byte("a"), nil, {9, 8, 7}},
	}
	for _, items := range cases {
		enc := EncodeList(items)
		got, err := DecodeList(enc)
		if err != nil {
			t.Fatalf("DecodeList: %v", err)
		}
		if len(got) != len(items) {
			t.Fatalf("len mismatch: got %d want %d", len(got), len(items))
		}
		for i := range items {
			if !bytes.Equal(got[i], items[i]) {
				t.Fatalf("item %d mismatch: got %q want %q", i, got[i], items[i])
			}
		}
	}
}

func TestListBogusCountAndTruncation(t *testing.T) {
	// n = 0xFFFFFFFF with no items -> must error, not allocate
	var buf bytes.Buffer
	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(KindList)
	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], ^uint32(0))
	buf.Write(u4[:])
	if _, err := DecodeList(buf.Bytes()); err == nil {
		t.Fatalf("expected error on bogus n")
	}

	enc := EncodeList([][]byte{[]byte("abc"), []byte("de")})
	if _, err := DecodeList(enc[:len(enc)-1]); err == nil {
		t.Fatalf("expected error on truncated list")
	}
	if _, err := DecodeList(append(append([]byte(nil), enc...), 0xBE)); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestKindRejectsForeignBytes(t *testing.T) {
	if _, err := Kind([]byte("not-wire-format")); err == nil {
		t.Fatalf("expected error on foreign bytes")
	}
	enc := EncodeList(nil)
	enc[5] = 9
	if _, err := Kind(enc); err == nil {
		t.Fatalf("expected error on unknown kind")
	}
}
