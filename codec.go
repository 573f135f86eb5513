package tinystr

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/tinystr/internal/common"
)

// Bridges to external text formats. Marshalling forwards the text view;
// unmarshalling validates UTF-8, releases any previous buffer, and stores
// the new content compactly (inline when it fits, exact-fit otherwise).

// MarshalText implements encoding.TextMarshaler.
func (s *String) MarshalText() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Invalid UTF-8 is
// rejected with a *Utf8Error carrying the input.
func (s *String) UnmarshalText(b []byte) error {
	if pos, ok := common.ValidUTF8(b); !ok {
		return &Utf8Error{Bytes: b, Pos: pos}
	}
	s.Release()
	*s = FromString(string(b))
	return nil
}

// MarshalJSON implements json.Marshaler as a plain JSON string.
func (s *String) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *String) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	s.Release()
	*s = FromString(text)
	return nil
}

// MarshalYAML implements yaml.Marshaler as a plain scalar.
func (s *String) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *String) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	s.Release()
	*s = FromString(text)
	return nil
}
