package tui

// State tracks the values collected during a session and the errors of the
// last invocation, keyed by field ID.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]any) *State {
	values := make(map[string]any, len(prefill))
	for id, value := range prefill {
		values[id] = value
	}
	return &State{values: values}
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	return s.values
}

// Errors returns the errors of the last invocation.
func (s *State) Errors() map[string][]string {
	return s.errors
}

// Value returns the collected value of a field.
func (s *State) Value(id string) (any, bool) {
	value, ok := s.values[id]
	return value, ok
}

// SetValue records the value of a field.
func (s *State) SetValue(id string, value any) {
	s.values[id] = value
}

// SetErrors replaces the current field errors.
func (s *State) SetErrors(errs map[string][]string) {
	s.errors = errs
}

// ErrorsFor returns the errors attached to a field.
func (s *State) ErrorsFor(id string) []string {
	return s.errors[id]
}

// NeedsPrompt reports whether a field must be asked for on the next round:
// it has no value yet or its last value was rejected.
func (s *State) NeedsPrompt(id string) bool {
	if _, ok := s.values[id]; !ok {
		return true
	}
	return len(s.errors[id]) > 0
}
