package permute

import "fmt"

// NameCollisionError reports two value texts in one variable's value set
// that sanitize to the same identifier token. Unit names could no longer be
// pairwise distinct, so generation must not proceed.
type NameCollisionError struct {
	Var    string
	First  string // Earlier value text
	Second string // Later value text mapping to the same token
	Token  string // The shared sanitized token
}

func (e *NameCollisionError) Error() string {
	if e.First == e.Second {
		return fmt.Sprintf("variable '%s' lists value '%s' more than once", e.Var, e.First)
	}
	return fmt.Sprintf("values '%s' and '%s' of variable '%s' both sanitize to name token '%s'",
		e.First, e.Second, e.Var, e.Token)
}

// CheckNames verifies that within each variable's value set no two value
// texts collapse to the same sanitized token. It runs before any unit is
// produced; a collision aborts the whole expansion.
func CheckNames(vars []Variable) error {
	for _, v := range vars {
		seen := make(map[string]string, len(v.Values))
		for _, value := range v.Values {
			token := Sanitize(value)
			if first, exists := seen[token]; exists {
				return &NameCollisionError{
					Var:    v.Name,
					First:  first,
					Second: value,
					Token:  token,
				}
			}
			seen[token] = value
		}
	}
	return nil
}
