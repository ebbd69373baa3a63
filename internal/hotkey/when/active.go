package when

// ActiveSet is the ordered set of active context names. Order is
// activation order; it is exposed to callers but carries no matching
// semantics. Duplicate activations collapse onto the original
// position.
//
// ActiveSet is not safe for concurrent use. The owning dispatcher
// serializes access to it.
type ActiveSet struct {
	names []string
	index map[string]struct{}
}

// NewActiveSet creates an active set, optionally pre-activating names.
func NewActiveSet(names ...string) (*ActiveSet, error) {
	s := &ActiveSet{index: make(map[string]struct{})}
	for _, name := range names {
		if err := s.Activate(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Activate adds a context name. Activating an already-active name is a
// no-op. Empty or negation-prefixed names are rejected with
// ErrInvalidContextName.
func (s *ActiveSet) Activate(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, ok := s.index[name]; ok {
		return nil
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return nil
}

// Deactivate removes a context name. Removing an inactive name is a
// no-op; an invalid name is still rejected.
func (s *ActiveSet) Deactivate(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, ok := s.index[name]; !ok {
		return nil
	}
	delete(s.index, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return nil
}

// Replace swaps the whole set for the given names. All names are
// validated before any mutation, so an invalid name leaves the set
// untouched.
func (s *ActiveSet) Replace(names ...string) error {
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return err
		}
	}
	s.names = s.names[:0]
	s.index = make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := s.index[name]; ok {
			continue
		}
		s.index[name] = struct{}{}
		s.names = append(s.names, name)
	}
	return nil
}

// Has returns true if the context is active.
func (s *ActiveSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the active names in activation order. The returned
// slice is a copy; mutating it does not affect the set, and an
// in-flight dispatch holding it is unaffected by later mutation.
func (s *ActiveSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of active contexts.
func (s *ActiveSet) Len() int {
	return len(s.names)
}
