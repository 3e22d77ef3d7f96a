package catalog

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
)

func convertString(raw string) (any, error) { return raw, nil }

func convertInt(raw string) (any, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", raw)
	}
	return v, nil
}

func convertFloat(raw string) (any, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

// convertHex renders window identifiers in canonical hex form. The raw
// value may arrive as decimal or as an 0x literal.
func convertHex(raw string) (any, error) {
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("not a window id: %q", raw)
	}
	return fmt.Sprintf("%#x", v), nil
}

// convertState parses the platform state word. Junk decodes to zero rather
// than failing, so a malformed state never drops the whole event.
func convertState(raw string) (any, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return uint32(0), nil
	}
	return uint32(v), nil
}

func convertTimestamp(raw string) (any, error) {
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not an epoch timestamp: %q", raw)
	}
	return strfmt.DateTime(time.Unix(sec, 0).UTC()), nil
}

// tclEscape matches the backslash escapes the host applies to braces,
// quotes, backslashes, and spaces when a payload travels as one token.
var tclEscape = regexp.MustCompile(`\\([{}"\\ ])`)

// convertData decodes a virtual-event payload. Three forms are accepted in
// order: "b64:"-tagged base64 JSON, plain JSON, and JSON carrying the host's
// backslash escapes. A payload that defeats all three decodes to an empty
// object, never an error.
func convertData(raw string) (any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}

	if b64, ok := strings.CutPrefix(raw, "b64:"); ok {
		decoded, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return map[string]any{}, nil
		}
		var out any
		if err := json.Unmarshal(decoded, &out); err != nil {
			return map[string]any{}, nil
		}
		return out, nil
	}

	var out any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}

	cleaned := tclEscape.ReplaceAllString(raw, "$1")
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil {
		return out, nil
	}
	return map[string]any{}, nil
}
