package when

// termResult classifies one AND-group against an active set.
type termResult uint8

const (
	// termNoMatch: an affirmation's context is inactive.
	termNoMatch termResult = iota

	// termInclusion: every affirmation is active and no negation is.
	termInclusion

	// termNegation: a negated reference's context is active. Decisive
	// for the whole expression, not just this group.
	termNegation

	// termVacuous: the group holds only negations and none matched.
	termVacuous
)

// evalTerm classifies the group and reports whether it carries at
// least one affirmation, matched or not.
func evalTerm(term Term, active []string) (termResult, bool) {
	hasAffirmation := false
	for _, ref := range term {
		if !ref.Negated {
			hasAffirmation = true
			break
		}
	}

	// A missing affirmation fails the group before its negations are
	// consulted, so a non-matching group never vetoes.
	for _, ref := range term {
		if !ref.Negated && !contains(active, ref.Name) {
			return termNoMatch, hasAffirmation
		}
	}
	for _, ref := range term {
		if ref.Negated && contains(active, ref.Name) {
			return termNegation, hasAffirmation
		}
	}

	if hasAffirmation {
		return termInclusion, true
	}
	return termVacuous, false
}

// Matches evaluates the expression against the active context names.
// It is a total function: any well-formed expression evaluates without
// error for any active set.
//
// OR-terms combine by disjunction, except that a matching negation in
// any term vetoes the entire expression, and a vacuously true
// negation-only term carries the expression only when no term anywhere
// contains an affirmation.
func (e Expression) Matches(active []string) bool {
	if e.pred != nil {
		return e.pred(active)
	}
	if len(e.terms) == 0 {
		return true
	}

	matchFound := false
	matchIfSingle := false
	hasAffirmative := false

	for _, term := range e.terms {
		result, affirmative := evalTerm(term, active)
		if affirmative {
			hasAffirmative = true
		}
		switch result {
		case termNegation:
			return false
		case termInclusion:
			matchFound = true
		case termVacuous:
			matchIfSingle = true
		case termNoMatch:
		}
	}

	if matchFound {
		return true
	}
	return matchIfSingle && !hasAffirmative
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
