// Package service implements the business rules over the injected
// collection stores. Handlers stay thin; everything testable lives
// here.
package service

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// nowISO is the timestamp format persisted on documents. UTC, matching
// what older records already hold.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// strField reads a string value from a decoded JSON body.
func strField(body map[string]interface{}, key string) string {
	if s, ok := body[key].(string); ok {
		return s
	}
	return ""
}

// boolField reads a bool value from a decoded JSON body.
func boolField(body map[string]interface{}, key string) bool {
	b, _ := body[key].(bool)
	return b
}

// strsField reads a string list, tolerating the []interface{} shape
// JSON decoding produces and a single bare string.
func strsField(body map[string]interface{}, key string) []string {
	switch v := body[key].(type) {
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
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// idString renders an identifier that may arrive as a JSON string or
// number. Numbers lose their fractional zero ("7", not "7.0").
func idString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	}
	return ""
}

// extraFrom collects whatever fields of the request body have no typed
// column, preserving the schemaless write behavior clients rely on.
// The password never lands in the extension map.
func extraFrom(body map[string]interface{}, known ...string) datatypes.JSONMap {
	knownSet := make(map[string]struct{}, len(known)+1)
	knownSet["password"] = struct{}{}
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	var extra datatypes.JSONMap
	for k, v := range body {
		if _, ok := knownSet[k]; ok {
			continue
		}
		if extra == nil {
			extra = datatypes.JSONMap{}
		}
		extra[k] = v
	}
	return extra
}
