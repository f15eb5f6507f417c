package mutation

import (
	"fmt"
	"math"
	"strconv"
)

// Snapshot is the keyed data a Tester mutates.
type Snapshot map[string]string

// Clone returns an independent copy. A nil snapshot clones to an empty one.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Kind identifies an operator variant.
type Kind string

// Operator kinds, also used as the `op` field in campaign files.
const (
	KindRemoveKey     Kind = "remove_key"
	KindAddKey        Kind = "add_key"
	KindChangeValue   Kind = "change_value"
	KindToggleBoolean Kind = "toggle_boolean"
	KindSwapValues    Kind = "swap_values"
	KindNumericDelta  Kind = "numeric_delta"
)

// Operator is a total transformation of a Snapshot.
// The set of implementations is closed.
type Operator interface {
	// Apply mutates s in place.
	Apply(s Snapshot)
	Kind() Kind
	String() string

	operator()
}

// RemoveKey deletes Key. Absent keys are a no-op.
type RemoveKey struct {
	Key string
}

func (RemoveKey) operator() {}

// Apply deletes the key in s.
func (op RemoveKey) Apply(s Snapshot) {
	delete(s, op.Key)
}

// Kind returns KindRemoveKey.
func (RemoveKey) Kind() Kind { return KindRemoveKey }

// String renders the operator for reports and trial IDs.
func (op RemoveKey) String() string {
	return fmt.Sprintf("remove_key(%q)", op.Key)
}

// AddKey inserts or overwrites Key with Value.
type AddKey struct {
	Key   string
	Value string
}

func (AddKey) operator() {}

// Apply sets the key to Value in s.
func (op AddKey) Apply(s Snapshot) {
	s[op.Key] = op.Value
}

// Kind returns KindAddKey.
func (AddKey) Kind() Kind { return KindAddKey }

// String renders the operator for reports and trial IDs.
func (op AddKey) String() string {
	return fmt.Sprintf("add_key(%q, %q)", op.Key, op.Value)
}

// ChangeValue overwrites Key only if it is already present.
// Unlike AddKey it never inserts.
type ChangeValue struct {
	Key   string
	Value string
}

func (ChangeValue) operator() {}

// Apply replaces the value of a present key in s.
func (op ChangeValue) Apply(s Snapshot) {
	if _, ok := s[op.Key]; ok {
		s[op.Key] = op.Value
	}
}

// Kind returns KindChangeValue.
func (ChangeValue) Kind() Kind { return KindChangeValue }

// String renders the operator for reports and trial IDs.
func (op ChangeValue) String() string {
	return fmt.Sprintf("change_value(%q, %q)", op.Key, op.Value)
}

// ToggleBoolean flips "true" to "false" and back. Any other value,
// including differently-cased spellings, is left alone.
type ToggleBoolean struct {
	Key string
}

func (ToggleBoolean) operator() {}

// Apply flips a boolean value in s.
func (op ToggleBoolean) Apply(s Snapshot) {
	switch s[op.Key] {
	case "true":
		s[op.Key] = "false"
	case "false":
		s[op.Key] = "true"
	}
}

// Kind returns KindToggleBoolean.
func (ToggleBoolean) Kind() Kind { return KindToggleBoolean }

// String renders the operator for reports and trial IDs.
func (op ToggleBoolean) String() string {
	return fmt.Sprintf("toggle_boolean(%q)", op.Key)
}

// SwapValues exchanges the values of First and Second.
// It is a no-op unless both keys are present.
type SwapValues struct {
	First  string
	Second string
}

func (SwapValues) operator() {}

// Apply exchanges the two values in s.
func (op SwapValues) Apply(s Snapshot) {
	a, okA := s[op.First]
	b, okB := s[op.Second]
	if !okA || !okB {
		return
	}
	s[op.First], s[op.Second] = b, a
}

// Kind returns KindSwapValues.
func (SwapValues) Kind() Kind { return KindSwapValues }

// String renders the operator for reports and trial IDs.
func (op SwapValues) String() string {
	return fmt.Sprintf("swap_values(%q, %q)", op.First, op.Second)
}

// NumericDelta adds Delta to a numeric value.
//
// Integer values use 64-bit wraparound arithmetic. Finite decimal values are
// shifted by float64(Delta) and re-serialised in shortest form. Missing keys
// and unparseable values are a no-op.
type NumericDelta struct {
	Key   string
	Delta int64
}

func (NumericDelta) operator() {}

// Apply shifts a numeric value by Delta in s.
func (op NumericDelta) Apply(s Snapshot) {
	raw, ok := s[op.Key]
	if !ok {
		return
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		s[op.Key] = strconv.FormatInt(n+op.Delta, 10)
		return
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	s[op.Key] = strconv.FormatFloat(f+float64(op.Delta), 'f', -1, 64)
}

// Kind returns KindNumericDelta.
func (NumericDelta) Kind() Kind { return KindNumericDelta }

// String renders the operator for reports and trial IDs.
func (op NumericDelta) String() string {
	return fmt.Sprintf("numeric_delta(%q, %d)", op.Key, op.Delta)
}

// ApplyAll applies ops to s in order.
func ApplyAll(s Snapshot, ops ...Operator) {
	for _, op := range ops {
		op.Apply(s)
	}
}
