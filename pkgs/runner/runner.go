// Package runner registers one subtest per value combination at test
// runtime. It is the closure-based counterpart of the source generator: run
// and check logic are ordinary functions over explicit bindings, and the
// shared enumeration and naming rules guarantee the same unit count, order
// and names as generated source.
package runner

import (
	"testing"

	"github.com/permutest/permutest/pkgs/permute"
)

// Value pairs a lexical identity with a runtime value. The name drives test
// naming exactly as a constant reference would in a specification file; the
// value is what the run closure receives.
type Value struct {
	Name string
	V    any
}

// Val is shorthand for constructing a Value
func Val(name string, v any) Value {
	return Value{Name: name, V: v}
}

// Variable declares one variable and its ordered value set
type Variable struct {
	Name   string
	Values []Value
}

// Bindings holds the values of one combination, keyed by variable name.
// Each subtest receives its own copy; the scaffold introduces no mutable
// state shared between units.
type Bindings map[string]any

// Int returns the binding for name as an int. It is a convenience for check
// closures; a missing or differently typed binding yields the zero value.
func (b Bindings) Int(name string) int {
	v, _ := b[name].(int)
	return v
}

// String returns the binding for name as a string
func (b Bindings) String(name string) string {
	v, _ := b[name].(string)
	return v
}

// Scenario describes one parameterized test: a title, variables with their
// value sets, a run closure producing a result, and a check closure
// validating it
type Scenario struct {
	Title string
	Vars  []Variable

	// When runs the code under test for one combination and returns its
	// result
	When func(b Bindings) any

	// Then checks the result of one combination. Failures it reports
	// through t are the unit's only failure channel.
	Then func(t *testing.T, b Bindings, result any)
}

// Run expands the scenario and registers one subtest per combination under
// the scenario title, in enumeration order: the first declared variable
// varies slowest. Invalid scenarios fail t before any subtest registers.
func (s *Scenario) Run(t *testing.T) {
	t.Helper()

	vars, lookup, err := s.validate()
	if err != nil {
		t.Fatalf("invalid scenario %q: %v", s.Title, err)
	}

	combos := permute.Enumerate(vars)

	t.Run(s.Title, func(t *testing.T) {
		for _, combo := range combos {
			combo := combo
			t.Run(permute.UnitName(combo), func(t *testing.T) {
				b := make(Bindings, len(combo))
				for _, binding := range combo {
					b[binding.Var] = lookup[binding.Var][binding.Value]
				}
				result := s.When(b)
				s.Then(t, b, result)
			})
		}
	})
}

// UnitNames returns the subtest names the scenario will register, in order.
// Useful for asserting on expected expansion without running anything.
func (s *Scenario) UnitNames() ([]string, error) {
	vars, _, err := s.validate()
	if err != nil {
		return nil, err
	}
	combos := permute.Enumerate(vars)
	names := make([]string, 0, len(combos))
	for _, combo := range combos {
		names = append(names, permute.UnitName(combo))
	}
	return names, nil
}

// validate applies the same semantic rules the parser enforces on
// specification files, plus the name collision check
func (s *Scenario) validate() ([]permute.Variable, map[string]map[string]any, error) {
	if s.Title == "" {
		return nil, nil, errMissing("title")
	}
	if len(s.Vars) == 0 {
		return nil, nil, errMissing("variables")
	}
	if s.When == nil {
		return nil, nil, errMissing("When closure")
	}
	if s.Then == nil {
		return nil, nil, errMissing("Then closure")
	}

	vars := make([]permute.Variable, 0, len(s.Vars))
	lookup := make(map[string]map[string]any, len(s.Vars))
	for _, v := range s.Vars {
		if v.Name == "" {
			return nil, nil, errMissing("variable name")
		}
		if len(v.Values) == 0 {
			return nil, nil, &ScenarioError{Message: "variable '" + v.Name + "' has an empty value list"}
		}
		if _, exists := lookup[v.Name]; exists {
			return nil, nil, &ScenarioError{Message: "duplicate variable '" + v.Name + "'"}
		}

		values := make([]string, 0, len(v.Values))
		byName := make(map[string]any, len(v.Values))
		for _, val := range v.Values {
			if val.Name == "" {
				return nil, nil, &ScenarioError{Message: "variable '" + v.Name + "' has a value with an empty name"}
			}
			values = append(values, val.Name)
			byName[val.Name] = val.V
		}
		vars = append(vars, permute.Variable{Name: v.Name, Values: values})
		lookup[v.Name] = byName
	}

	if err := permute.CheckNames(vars); err != nil {
		return nil, nil, err
	}

	return vars, lookup, nil
}

// ScenarioError reports an invalid scenario definition
type ScenarioError struct {
	Message string
}

func (e *ScenarioError) Error() string {
	return e.Message
}

func errMissing(what string) *ScenarioError {
	return &ScenarioError{Message: "scenario is missing its " + what}
}
