package codec

// Encoder turns a V into the bytes written to the backend.
type Encoder[V any] interface {
	Encode(V) ([]byte, error)
}

// Decoder turns stored bytes back into a V.
type Decoder[V any] interface {
	Decode([]byte) (V, error)
}

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encoder[V]
	Decoder[V]
}

// DecodeFunc adapts a plain function to Decoder.
type DecodeFunc[V any] func([]byte) (V, error)

func (f DecodeFunc[V]) Decode(b []byte) (V, error) { return f(b) }

// EncodeFunc adapts a plain function to Encoder.
type EncodeFunc[V any] func(V) ([]byte, error)

func (f EncodeFunc[V]) Encode(v V) ([]byte, error) { return f(v) }
