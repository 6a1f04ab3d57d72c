package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Doc renders an entity the way the API returns it: the typed fields in
// their wire shape, with any ad-hoc extension fields merged back in.
// Typed fields win over extension fields of the same name.
func Doc(entity interface{}, extra datatypes.JSONMap) map[string]interface{} {
	out := make(map[string]interface{}, len(extra)+8)
	for k, v := range extra {
		out[k] = v
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return out
	}
	var typed map[string]interface{}
	if err := json.Unmarshal(raw, &typed); err != nil {
		return out
	}
	for k, v := range typed {
		out[k] = v
	}
	return out
}

// ExtraString reads a string-valued extension field, returning "" when
// the key is absent or holds something other than a string.
func ExtraString(extra datatypes.JSONMap, key string) string {
	if extra == nil {
		return ""
	}
	if s, ok := extra[key].(string); ok {
		return s
	}
	return ""
}

// ExtraStrings reads a string-list extension field, tolerating both
// []string and the []interface{} shape JSON decoding produces.
func ExtraStrings(extra datatypes.JSONMap, key string) []string {
	if extra == nil {
		return nil
	}
	switch v := extra[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// FirstNonEmpty returns the first of its arguments that is not "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
