package track

import (
	"fmt"
	"strings"
)

// ContentType identifies the kind of element placed on the track.
type ContentType int

// Content types in selection priority order. Obstacle is the default type and
// receives whatever probability mass the other types leave over.
const (
	Obstacle ContentType = iota
	TinyObstacle
	Pad
	InteractivePad
	Platform
)

// ContentTypes lists every content type in declaration order.
var ContentTypes = []ContentType{Obstacle, TinyObstacle, Pad, InteractivePad, Platform}

var contentTypeNames = map[ContentType]string{
	Obstacle:       "obstacle",
	TinyObstacle:   "tiny_obstacle",
	Pad:            "pad",
	InteractivePad: "interactive_pad",
	Platform:       "platform",
}

// String returns the snake_case name used in config files and JSON output.
func (t ContentType) String() string {
	if name, ok := contentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("content_type(%d)", int(t))
}

// Valid reports whether t is one of the declared content types.
func (t ContentType) Valid() bool {
	_, ok := contentTypeNames[t]
	return ok
}

// IsObstacleClass reports whether t is the default obstacle or its tiny variant.
func (t ContentType) IsObstacleClass() bool {
	return t == Obstacle || t == TinyObstacle
}

// ParseContentType converts a name such as "pad" or "interactive-pad" into a
// ContentType. Matching is case-insensitive and accepts dashes for underscores.
func ParseContentType(s string) (ContentType, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for t, name := range contentTypeNames {
		if name == norm {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown content type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t ContentType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown content type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ContentType) UnmarshalText(b []byte) error {
	v, err := ParseContentType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
