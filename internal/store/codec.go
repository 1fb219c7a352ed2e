package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"errkb/internal/domain"
)

// Codec serializes a Store. Encoding keeps the Store's iteration order so
// that encode, decode, encode yields identical bytes.
type Codec interface {
	Name() string
	Encode(st *domain.Store) ([]byte, error)
	Decode(data []byte) (*domain.Store, error)
}

var (
	// YAML encodes the Store as a block mapping.
	YAML Codec = yamlCodec{}
	// JSON encodes the Store as an indented object with literal non-ASCII text.
	JSON Codec = jsonCodec{}
)

// CodecFor picks a codec from the file extension; .json selects JSON and
// everything else YAML.
func CodecFor(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Encode(st *domain.Store) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range st.Records() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Code},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Explanation},
		)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Decode(data []byte) (*domain.Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, corrupt(err, "store is not valid YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, domain.Errorf(domain.ECORRUPT, "store is empty")
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, domain.Errorf(domain.ECORRUPT, "store is not a mapping (line %d)", m.Line)
	}
	b := newBuilder()
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, domain.Errorf(domain.ECORRUPT, "store entry at line %d is not a scalar pair", k.Line)
		}
		if err := b.add(k.Value, v.Value); err != nil {
			return nil, err
		}
	}
	return b.st, nil
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

// Encode writes the layout of a two-space indented JSON object without a
// trailing newline.
func (jsonCodec) Encode(st *domain.Store) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range st.Records() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		if err := writeJSONString(&buf, r.Code); err != nil {
			return nil, err
		}
		buf.WriteString(": ")
		if err := writeJSONString(&buf, r.Explanation); err != nil {
			return nil, err
		}
	}
	if st.Len() > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

func (jsonCodec) Decode(data []byte) (*domain.Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, corrupt(err, "store is not valid JSON")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, domain.Errorf(domain.ECORRUPT, "store is not a JSON object")
	}
	b := newBuilder()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, corrupt(err, "store is not valid JSON")
		}
		code, ok := tok.(string)
		if !ok {
			return nil, domain.Errorf(domain.ECORRUPT, "store key is not a string")
		}
		var explanation string
		if err := dec.Decode(&explanation); err != nil {
			return nil, corrupt(err, "explanation for %q is not a string", code)
		}
		if err := b.add(code, explanation); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, corrupt(err, "store is not valid JSON")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, domain.Errorf(domain.ECORRUPT, "unexpected data after store object")
	}
	return b.st, nil
}

// builder enforces the Store invariants while decoding.
type builder struct {
	st *domain.Store
}

func newBuilder() *builder { return &builder{st: domain.NewStore()} }

func (b *builder) add(code, explanation string) error {
	if code == "" {
		return domain.Errorf(domain.ECORRUPT, "store contains an empty code")
	}
	if explanation == "" {
		return domain.Errorf(domain.ECORRUPT, "store contains an empty explanation for %q", code)
	}
	if _, dup := b.st.Get(code); dup {
		return domain.Errorf(domain.ECORRUPT, "store contains duplicate code %q", code)
	}
	b.st.Set(code, explanation)
	return nil
}

func corrupt(err error, format string, args ...any) error {
	return domain.WrapError(domain.ECORRUPT, err, format, args...)
}
