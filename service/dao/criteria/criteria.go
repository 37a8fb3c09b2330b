package criteria

import (
	"github.com/viant/allocor/service/dao"
)

// Matches evaluates listing parameters against the record's filterable
// fields. Every parameter must match (conjunctive); parameters naming a
// field the record does not expose are ignored.
func Matches(fields map[string]string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		actual, ok := fields[parameter.Name]
		if !ok {
			continue
		}
		if !matchesValue(actual, parameter.Value) {
			return false
		}
	}
	return true
}

func matchesValue(actual string, expect interface{}) bool {
	switch value := expect.(type) {
	case string:
		return actual == value
	case []string:
		for _, candidate := range value {
			if actual == candidate {
				return true
			}
		}
		return false
	}
	return true
}
