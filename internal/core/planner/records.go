package planner

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Record value coercion. The bolt protocol returns int64 for integers and
// collect() wraps OPTIONAL MATCH misses as nil list entries.

func recordValue(record *neo4j.Record, key string) interface{} {
	value, _ := record.Get(key)
	return value
}

func asString(value interface{}) string {
	s, _ := value.(string)
	return s
}

func asInt(value interface{}) int {
	switch v := value.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func asStrings(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asInts(value interface{}) []int {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	var out []int
	for _, item := range items {
		out = append(out, asInt(item))
	}
	return out
}
