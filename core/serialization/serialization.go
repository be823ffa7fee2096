// Package serialization marshals heterogeneous values into type-tagged
// JSON envelopes with optional compression.
//
// A Serializer carries a registry of stable type names. Serialized
// output is the envelope {"type": name, "data": {...}}, optionally
// gzip- or xz-compressed, so a reader can recover the concrete Go type
// without knowing it in advance.
package serialization

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/ulikunitz/xz"

	"github.com/calperum/textkit/core/errors"
)

// Compression specifies the compression applied around the envelope.
type Compression string

const (
	// CompressionNone stores the envelope as plain JSON.
	CompressionNone Compression = "none"
	// CompressionGzip uses gzip compression (stdlib, fast).
	CompressionGzip Compression = "gzip"
	// CompressionXZ uses XZ/LZMA2 compression (best ratio).
	CompressionXZ Compression = "xz"
)

// Options configures a Serializer.
type Options struct {
	// Pretty emits indented JSON envelopes.
	Pretty bool

	// Compression wraps the envelope in a compressed stream. Empty
	// means CompressionNone.
	Compression Compression
}

// envelope is the wire form around every serialized value.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Serializer marshals and unmarshals registered types.
type Serializer struct {
	opts  Options
	types map[string]reflect.Type
	names map[reflect.Type]string
}

// New creates a Serializer with an empty type registry.
func New(opts Options) *Serializer {
	if opts.Compression == "" {
		opts.Compression = CompressionNone
	}
	return &Serializer{
		opts:  opts,
		types: make(map[string]reflect.Type),
		names: make(map[reflect.Type]string),
	}
}

// Register associates a stable name with the concrete type of
// prototype. A pointer prototype round-trips as a pointer, a value
// prototype as a value. Registering a duplicate name or type fails.
func (s *Serializer) Register(name string, prototype any) error {
	if name == "" {
		return errors.NewValidation("name", "type name must not be empty")
	}
	if prototype == nil {
		return errors.NewValidation("prototype", "prototype must not be nil")
	}
	t := reflect.TypeOf(prototype)
	if _, dup := s.types[name]; dup {
		return errors.NewValidation("name", fmt.Sprintf("type name %q already registered", name))
	}
	if _, dup := s.names[t]; dup {
		return errors.NewValidation("prototype", fmt.Sprintf("type %T already registered", prototype))
	}
	s.types[name] = t
	s.names[t] = name
	return nil
}

// Serialize marshals v into a type-tagged envelope. The concrete type
// of v must be registered.
func (s *Serializer) Serialize(v any) ([]byte, error) {
	name, ok := s.names[reflect.TypeOf(v)]
	if !ok {
		return nil, errors.NewUnsupported(fmt.Sprintf("type %T", v), "not registered with the serializer")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling %s data", name)
	}

	env := envelope{Type: name, Data: data}
	var encoded []byte
	if s.opts.Pretty {
		encoded, err = json.MarshalIndent(env, "", "  ")
	} else {
		encoded, err = json.Marshal(env)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling %s envelope", name)
	}

	return s.compress(encoded)
}

// Deserialize unmarshals a serialized envelope back into a value of
// its registered type. Compression is detected from the leading magic
// bytes, so a Serializer can read output produced under different
// options.
func (s *Serializer) Deserialize(data []byte) (any, error) {
	plain, err := decompress(data)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(plain, &env); err != nil {
		return nil, &errors.ParseError{Format: "JSON", Message: "malformed envelope", Err: err}
	}
	if env.Type == "" {
		return nil, errors.NewParse("JSON", "", "envelope carries no type name")
	}

	t, ok := s.types[env.Type]
	if !ok {
		return nil, errors.NewNotFound("registered type", env.Type)
	}

	elem := t
	pointer := t.Kind() == reflect.Pointer
	if pointer {
		elem = t.Elem()
	}

	value := reflect.New(elem)
	if err := json.Unmarshal(env.Data, value.Interface()); err != nil {
		return nil, &errors.ParseError{
			Format:  "JSON",
			Message: fmt.Sprintf("malformed %s data", env.Type),
			Err:     err,
		}
	}

	if pointer {
		return value.Interface(), nil
	}
	return value.Elem().Interface(), nil
}

func (s *Serializer) compress(encoded []byte) ([]byte, error) {
	switch s.opts.Compression {
	case CompressionNone:
		return encoded, nil
	case CompressionGzip:
		var buf bytes.Buffer
		w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, errors.NewIO("compress", "", err)
		}
		if _, err := w.Write(encoded); err != nil {
			return nil, errors.NewIO("compress", "", err)
		}
		if err := w.Close(); err != nil {
			return nil, errors.NewIO("compress", "", err)
		}
		return buf.Bytes(), nil
	case CompressionXZ:
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, errors.NewIO("compress", "", err)
		}
		if _, err := w.Write(encoded); err != nil {
			return nil, errors.NewIO("compress", "", err)
		}
		if err := w.Close(); err != nil {
			return nil, errors.NewIO("compress", "", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.NewUnsupported("compression", string(s.opts.Compression))
	}
}

func decompress(data []byte) ([]byte, error) {
	switch detectCompression(data) {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.NewIO("decompress", "", err)
		}
		defer r.Close()
		plain, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.NewIO("decompress", "", err)
		}
		return plain, nil
	case CompressionXZ:
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.NewIO("decompress", "", err)
		}
		plain, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.NewIO("decompress", "", err)
		}
		return plain, nil
	default:
		return data, nil
	}
}

// detectCompression inspects the leading magic bytes.
func detectCompression(data []byte) Compression {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return CompressionGzip
	}
	if len(data) >= 6 && data[0] == 0xfd && data[1] == 0x37 && data[2] == 0x7a &&
		data[3] == 0x58 && data[4] == 0x5a && data[5] == 0x00 {
		return CompressionXZ
	}
	return CompressionNone
}
