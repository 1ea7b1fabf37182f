package rest

import (
	"encoding/json"
	"strings"
)

type DetailKind string

const (
	DetailMessage     DetailKind = "message"
	DetailFieldErrors DetailKind = "field_errors"
	DetailUnknown     DetailKind = "unknown"
)

type FieldError struct {
	Loc string `json:"loc,omitempty"`
	Msg string `json:"msg"`
}

// Detail is the normalized form of the server's error `detail` field, which
// arrives as a plain string, an array of field errors, or an object with a
// msg key. Normalization happens once here; every dialog consumes the same
// shape.
type Detail struct {
	Kind    DetailKind
	Message string
	Fields  []FieldError
}

type rawFieldError struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// ParseDetail classifies the raw detail payload. An empty or unparsable
// detail comes back as DetailUnknown with no message.
func ParseDetail(raw json.RawMessage) Detail {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Detail{Kind: DetailUnknown}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return Detail{Kind: DetailMessage, Message: s}
		}
	case '[':
		var items []rawFieldError
		if err := json.Unmarshal(raw, &items); err == nil && len(items) > 0 {
			fields := make([]FieldError, 0, len(items))
			for _, item := range items {
				fields = append(fields, FieldError{Loc: joinLoc(item.Loc), Msg: item.Msg})
			}
			return Detail{Kind: DetailFieldErrors, Fields: fields}
		}
	case '{':
		var obj rawFieldError
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Msg != "" {
			return Detail{Kind: DetailMessage, Message: obj.Msg}
		}
	}

	return Detail{Kind: DetailUnknown}
}

// String flattens whichever variant was received into one displayable line.
func (d Detail) String() string {
	switch d.Kind {
	case DetailMessage:
		return d.Message
	case DetailFieldErrors:
		parts := make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			if f.Loc != "" {
				parts = append(parts, f.Loc+": "+f.Msg)
			} else {
				parts = append(parts, f.Msg)
			}
		}
		return strings.Join(parts, "; ")
	default:
		return "The request failed"
	}
}

func joinLoc(loc []interface{}) string {
	parts := make([]string, 0, len(loc))
	for _, p := range loc {
		s, ok := p.(string)
		if !ok {
			continue
		}
		// Positional markers like "body" add nothing for the operator.
		if s == "body" || s == "query" || s == "path" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ".")
}
