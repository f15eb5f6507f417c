package mutation

// Predicate expresses an invariant that should hold on correct data.
type Predicate func(Snapshot) bool

// Tester owns a mutable snapshot and the operators applied to it so far.
type Tester struct {
	state   Snapshot
	applied []Operator
}

// NewTester creates a tester over a private copy of initial.
func NewTester(initial map[string]string) *Tester {
	return &Tester{state: Snapshot(initial).Clone()}
}

// Apply mutates the current snapshot with op and records it.
func (t *Tester) Apply(op Operator) {
	op.Apply(t.state)
	t.applied = append(t.applied, op)
}

// ApplyAll applies ops in order.
func (t *Tester) ApplyAll(ops ...Operator) {
	for _, op := range ops {
		t.Apply(op)
	}
}

// State returns a copy of the current snapshot.
func (t *Tester) State() Snapshot {
	return t.state.Clone()
}

// Applied returns the operators applied so far, oldest first.
func (t *Tester) Applied() []Operator {
	out := make([]Operator, len(t.applied))
	copy(out, t.applied)
	return out
}

// DetectMutation reports whether the mutation would be caught by a test
// asserting pred, i.e. it returns !pred(current state).
// The predicate receives a copy and cannot alter the tester.
func (t *Tester) DetectMutation(pred Predicate) bool {
	return !pred(t.State())
}

// Clone returns an independent tester with the same state and history.
func (t *Tester) Clone() *Tester {
	return &Tester{
		state:   t.state.Clone(),
		applied: t.Applied(),
	}
}
