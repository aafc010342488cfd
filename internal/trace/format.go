package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format determines the serialization format for events.
type Format uint8

const (
	FormatAuto   Format = iota // detect from output path
	FormatText                 // indented human-readable lines
	FormatNDJSON               // one JSON object per line
)

// String returns the string representation of Format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatText:
		return "text"
	case FormatNDJSON:
		return "ndjson"
	default:
		return "unknown"
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// jsonEvent mirrors Event with stable JSON field names.
type jsonEvent struct {
	TS     int64  `json:"ts"`
	Seq    uint64 `json:"seq"`
	Kind   string `json:"kind"`
	Scope  string `json:"scope"`
	Span   uint64 `json:"span"`
	Parent uint64 `json:"parent,omitempty"`
	Depth  int    `json:"depth"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
}

// FormatEvent serializes one event, including the trailing newline.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		data, err := json.Marshal(jsonEvent{
			TS:     ev.Time.UnixMicro(),
			Seq:    ev.Seq,
			Kind:   ev.Kind.String(),
			Scope:  ev.Scope.String(),
			Span:   ev.SpanID,
			Parent: ev.ParentID,
			Depth:  ev.Depth,
			Name:   ev.Name,
			Detail: ev.Detail,
		})
		if err != nil {
			return nil
		}
		return append(data, '\n')

	default:
		// Text format mirrors the solver's nesting: two spaces per depth,
		// closing parenthesis on span end.
		indent := strings.Repeat("  ", ev.Depth)
		var line string
		switch ev.Kind {
		case KindSpanBegin:
			line = fmt.Sprintf("%s(%s", indent, ev.Name)
			if ev.Detail != "" {
				line += " " + ev.Detail
			}
		case KindSpanEnd:
			line = indent + ")"
			if ev.Detail != "" {
				line += " " + ev.Detail
			}
		default:
			line = indent + ev.Name
			if ev.Detail != "" {
				line += " " + ev.Detail
			}
		}
		return []byte(line + "\n")
	}
}
