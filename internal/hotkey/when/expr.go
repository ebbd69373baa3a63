package when

import (
	"errors"
	"fmt"
	"strings"
)

// NegationPrefix marks a negated context reference.
const NegationPrefix = "!"

// ErrInvalidContextName indicates an empty context name, or a name
// carrying the negation prefix where a plain name is required.
var ErrInvalidContextName = errors.New("when: invalid context name")

// ErrEmptyTerm indicates an expression term with no references.
var ErrEmptyTerm = errors.New("when: empty expression term")

// Ref is a single context reference inside an AND-group.
type Ref struct {
	// Name is the referenced context name, without the negation prefix.
	Name string

	// Negated inverts the reference: the group requires the context to
	// be inactive, and an active context vetoes the whole expression.
	Negated bool
}

// ParseRef parses a context reference, honoring the negation prefix.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	ref := Ref{Name: s}
	if strings.HasPrefix(s, NegationPrefix) {
		ref.Negated = true
		ref.Name = strings.TrimSpace(strings.TrimPrefix(s, NegationPrefix))
	}
	if err := ValidateName(ref.Name); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

// String returns the reference in parseable form.
func (r Ref) String() string {
	if r.Negated {
		return NegationPrefix + r.Name
	}
	return r.Name
}

// ValidateName rejects names that cannot be activated: empty names and
// names carrying the negation prefix.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidContextName)
	}
	if strings.HasPrefix(name, NegationPrefix) {
		return fmt.Errorf("%w: %q carries the negation prefix", ErrInvalidContextName, name)
	}
	return nil
}

// Term is one AND-group: every affirmation must be active and no
// negation may be active for the group to match.
type Term []Ref

// And builds an AND-group from reference strings ("editor", "!readonly").
func And(refs ...string) (Term, error) {
	if len(refs) == 0 {
		return nil, ErrEmptyTerm
	}
	term := make(Term, 0, len(refs))
	for _, s := range refs {
		ref, err := ParseRef(s)
		if err != nil {
			return nil, err
		}
		term = append(term, ref)
	}
	return term, nil
}

// Predicate is an opaque activation rule over the active context
// names, in activation order. It must be a pure function of its
// argument and must not panic; dispatch-time evaluation never errors.
type Predicate func(active []string) bool

// Expression decides whether a shortcut may fire for a given active
// context set. The zero value matches always.
type Expression struct {
	terms []Term
	pred  Predicate
}

// Always returns the global expression, which matches any active set.
func Always() Expression {
	return Expression{}
}

// Or combines AND-groups into a disjunction.
func Or(terms ...Term) Expression {
	return Expression{terms: terms}
}

// FromPredicate wraps an opaque predicate as an expression.
func FromPredicate(p Predicate) Expression {
	return Expression{pred: p}
}

// Parse parses an expression in when-clause syntax: OR-terms separated
// by "||", references inside a term separated by "&&", negation with
// a leading "!". The empty string parses to Always.
//
//	"editor && !readonly || palette"
func Parse(s string) (Expression, error) {
	if strings.TrimSpace(s) == "" {
		return Always(), nil
	}

	var terms []Term
	for _, clause := range strings.Split(s, "||") {
		if strings.TrimSpace(clause) == "" {
			return Expression{}, fmt.Errorf("%w: %q", ErrEmptyTerm, s)
		}
		term, err := And(strings.Split(clause, "&&")...)
		if err != nil {
			return Expression{}, err
		}
		terms = append(terms, term)
	}
	return Or(terms...), nil
}

// IsAlways returns true for the global expression.
func (e Expression) IsAlways() bool {
	return e.pred == nil && len(e.terms) == 0
}

// String returns the expression in parseable form. Predicate
// expressions are opaque and render as "<predicate>".
func (e Expression) String() string {
	if e.pred != nil {
		return "<predicate>"
	}
	clauses := make([]string, 0, len(e.terms))
	for _, term := range e.terms {
		refs := make([]string, 0, len(term))
		for _, ref := range term {
			refs = append(refs, ref.String())
		}
		clauses = append(clauses, strings.Join(refs, " && "))
	}
	return strings.Join(clauses, " || ")
}
