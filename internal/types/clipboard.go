package types

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ContentType discriminates the clipboard payload variants
type ContentType string

const (
	TypeText  ContentType = "text"
	TypeImage ContentType = "image"
)

// Content is a clipboard payload: either UTF-8 text or raster image bytes.
// Use TextContent and ImageContent to build one.
type Content struct {
	Type ContentType
	Data []byte
}

// TextContent wraps a string payload
func TextContent(s string) Content {
	// invalid sequences become U+FFFD, the same bytes encoding/json would write
	return Content{Type: TypeText, Data: []byte(strings.ToValidUTF8(s, "\uFFFD"))}
}

// ImageContent wraps raster image bytes
func ImageContent(b []byte) Content {
	return Content{Type: TypeImage, Data: b}
}

// Text returns the string payload when c is text
func (c Content) Text() (string, bool) {
	if c.Type != TypeText {
		return "", false
	}
	return string(c.Data), true
}

// Image returns the raster payload when c is an image
func (c Content) Image() ([]byte, bool) {
	if c.Type != TypeImage {
		return nil, false
	}
	return c.Data, true
}

// IsZero reports whether c carries no variant at all
func (c Content) IsZero() bool {
	return c.Type == "" && len(c.Data) == 0
}

// Equal compares two payloads structurally
func (c Content) Equal(other Content) bool {
	return c.Type == other.Type && bytes.Equal(c.Data, other.Data)
}

// Size returns the payload length in bytes
func (c Content) Size() int {
	return len(c.Data)
}

func (c Content) String() string {
	switch c.Type {
	case TypeText:
		return string(c.Data)
	case TypeImage:
		return fmt.Sprintf("[image %d bytes]", len(c.Data))
	default:
		return "[empty]"
	}
}

// wireContent is the persisted shape: {"type": "text"|"image", "value": ...}
type wireContent struct {
	Type  ContentType     `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes text as a JSON string and images as base64
func (c Content) MarshalJSON() ([]byte, error) {
	var (
		value []byte
		err   error
	)
	switch c.Type {
	case TypeText:
		value, err = json.Marshal(string(c.Data))
	case TypeImage:
		value, err = json.Marshal(base64.StdEncoding.EncodeToString(c.Data))
	default:
		return nil, fmt.Errorf("unknown content type %q", c.Type)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireContent{Type: c.Type, Value: value})
}

// UnmarshalJSON decodes the discriminated form written by MarshalJSON
func (c *Content) UnmarshalJSON(data []byte) error {
	var w wireContent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var s string
	if err := json.Unmarshal(w.Value, &s); err != nil {
		return fmt.Errorf("content value: %w", err)
	}

	switch w.Type {
	case TypeText:
		*c = TextContent(s)
	case TypeImage:
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("image value: %w", err)
		}
		*c = ImageContent(raw)
	default:
		return fmt.Errorf("unknown content type %q", w.Type)
	}
	return nil
}
