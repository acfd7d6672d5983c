package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
)

// envelope is the upstream's loose response wrapper. Success is a pointer
// because older endpoints omit it entirely and signal only via HTTP status.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`

	status int
}

var errListShape = errors.New("upstream list response has no recognizable collection")

// maxUnwrapDepth bounds the defensive descent: the upstream has been observed
// nesting collections as data.items, data.data and data.data.data.
const maxUnwrapDepth = 3

// extractList normalizes the upstream's inconsistent list nesting to the bare
// JSON array. A missing or null data field yields nil (empty result), an
// unrecognizable shape yields an error rather than a silent empty list.
func extractList(raw json.RawMessage) (json.RawMessage, error) {
	return unwrapList(raw, 0)
}

func unwrapList(raw json.RawMessage, depth int) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}
	if trimmed[0] != '{' || depth >= maxUnwrapDepth {
		return nil, errListShape
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, errListShape
	}
	if items, ok := obj["items"]; ok {
		return unwrapList(items, depth+1)
	}
	if data, ok := obj["data"]; ok {
		return unwrapList(data, depth+1)
	}
	return nil, errListShape
}

// extractObject applies the same defensive descent for single-record
// responses, where the record is sometimes wrapped one level deeper as
// data.data.
func extractObject(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return trimmed, nil
	}
	if inner, ok := obj["data"]; ok {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '{' {
			return inner, nil
		}
	}
	return trimmed, nil
}
