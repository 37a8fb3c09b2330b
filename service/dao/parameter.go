package dao

// Parameter is a named listing filter. Multiple parameters are conjunctive.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a listing filter; with a single value the parameter
// matches that value, with many it matches any of them.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
