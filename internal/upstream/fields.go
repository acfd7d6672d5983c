package upstream

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// jsonFields flattens a JSON-taggable payload into multipart form fields.
// Booleans and numbers are rendered the way the upstream's form parser
// expects them ("true", "42", "19.99").
func jsonFields(payload interface{}) map[string]string {
	fields := map[string]string{}
	if payload == nil {
		return fields
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fields
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return fields
	}
	for key, value := range m {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			fields[key] = v
		case bool:
			fields[key] = strconv.FormatBool(v)
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			fields[key] = fmt.Sprintf("%v", v)
		}
	}
	return fields
}
