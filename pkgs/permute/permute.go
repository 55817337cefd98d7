// Package permute enumerates value combinations and synthesizes the
// deterministic unit names shared by the source generator and the runtime
// runner. Everything here is a pure function of its input: identical input
// yields byte-identical names in identical order.
package permute

import (
	"strings"
	"unicode"
)

// Variable pairs a variable name with its ordered value texts
type Variable struct {
	Name   string
	Values []string
}

// Binding assigns one value text to one variable
type Binding struct {
	Var   string
	Value string
}

// Combination assigns exactly one value to every declared variable, in
// declaration order
type Combination []Binding

// Count returns the number of combinations: the product of all value set
// sizes. Zero variables yield zero combinations (the parser rejects that
// case before it reaches this package).
func Count(vars []Variable) int {
	if len(vars) == 0 {
		return 0
	}
	count := 1
	for _, v := range vars {
		count *= len(v.Values)
	}
	return count
}

// Enumerate returns every Combination in mixed-radix counter order: the
// first declared variable is the most significant digit (varies slowest),
// the last declared variable the least significant (varies fastest). Order
// depends only on declaration order and value list order, never on value
// content.
func Enumerate(vars []Variable) []Combination {
	total := Count(vars)
	if total == 0 {
		return nil
	}

	k := len(vars)

	// Digit weight of variable j is the product of all radices to its
	// right
	weights := make([]int, k)
	w := 1
	for j := k - 1; j >= 0; j-- {
		weights[j] = w
		w *= len(vars[j].Values)
	}

	combos := make([]Combination, 0, total)
	for i := 0; i < total; i++ {
		c := make(Combination, k)
		for j := 0; j < k; j++ {
			idx := (i / weights[j]) % len(vars[j].Values)
			c[j] = Binding{Var: vars[j].Name, Value: vars[j].Values[idx]}
		}
		combos = append(combos, c)
	}
	return combos
}

// UnitName derives the deterministic identifier suffix for one combination:
// each binding contributes the variable name and the sanitized value text,
// all joined with underscores in declaration order.
func UnitName(c Combination) string {
	var b strings.Builder
	for i, binding := range c {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(binding.Var)
		b.WriteByte('_')
		b.WriteString(Sanitize(binding.Value))
	}
	return b.String()
}

// Sanitize maps arbitrary value text to an identifier-safe token: every rune
// valid in an identifier is kept, every other rune becomes an underscore.
// The mapping is not injective in general; CheckNames rejects the cases
// where it matters.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
