package mutation

import (
	"errors"
	"fmt"
)

// OperatorSpec is the serialised form of an operator, as written in campaign
// files:
//
//	mutations:
//	  - {op: remove_key, key: enabled}
//	  - {op: add_key, key: mode, value: fast}
//	  - {op: swap_values, key: primary, other: secondary}
//	  - {op: numeric_delta, key: retries, delta: -1}
type OperatorSpec struct {
	Op    Kind   `yaml:"op" json:"op"`
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
	Other string `yaml:"other,omitempty" json:"other,omitempty"`
	Delta int64  `yaml:"delta,omitempty" json:"delta,omitempty"`
}

// ErrUnknownOperator is returned by ParseOperator for an unrecognised op.
var ErrUnknownOperator = errors.New("unknown mutation operator")

// ParseOperator builds an Operator from its serialised form.
// Fields that the kind does not use must be empty.
//
// Key (and Other for swap_values) must be non-empty: in a campaign file an
// omitted key decodes to "", so the empty key cannot be told apart from a
// typo. Operators built directly still accept any key.
func ParseOperator(spec OperatorSpec) (Operator, error) {
	if spec.Key == "" {
		return nil, fmt.Errorf("%s: key is required", spec.Op)
	}

	switch spec.Op {
	case KindRemoveKey:
		if err := forbid(spec, "value", "other", "delta"); err != nil {
			return nil, err
		}
		return RemoveKey{Key: spec.Key}, nil
	case KindAddKey:
		if err := forbid(spec, "other", "delta"); err != nil {
			return nil, err
		}
		return AddKey{Key: spec.Key, Value: spec.Value}, nil
	case KindChangeValue:
		if err := forbid(spec, "other", "delta"); err != nil {
			return nil, err
		}
		return ChangeValue{Key: spec.Key, Value: spec.Value}, nil
	case KindToggleBoolean:
		if err := forbid(spec, "value", "other", "delta"); err != nil {
			return nil, err
		}
		return ToggleBoolean{Key: spec.Key}, nil
	case KindSwapValues:
		if spec.Other == "" {
			return nil, fmt.Errorf("%s: other is required", spec.Op)
		}
		if err := forbid(spec, "value", "delta"); err != nil {
			return nil, err
		}
		return SwapValues{First: spec.Key, Second: spec.Other}, nil
	case KindNumericDelta:
		if err := forbid(spec, "value", "other"); err != nil {
			return nil, err
		}
		return NumericDelta{Key: spec.Key, Delta: spec.Delta}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, spec.Op)
	}
}

// ParseOperators parses specs in order, reporting the index of the first
// invalid entry.
func ParseOperators(specs []OperatorSpec) ([]Operator, error) {
	ops := make([]Operator, 0, len(specs))
	for i, spec := range specs {
		op, err := ParseOperator(spec)
		if err != nil {
			return nil, fmt.Errorf("mutations[%d]: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// SpecOf returns the serialised form of op.
func SpecOf(op Operator) OperatorSpec {
	switch o := op.(type) {
	case RemoveKey:
		return OperatorSpec{Op: KindRemoveKey, Key: o.Key}
	case AddKey:
		return OperatorSpec{Op: KindAddKey, Key: o.Key, Value: o.Value}
	case ChangeValue:
		return OperatorSpec{Op: KindChangeValue, Key: o.Key, Value: o.Value}
	case ToggleBoolean:
		return OperatorSpec{Op: KindToggleBoolean, Key: o.Key}
	case SwapValues:
		return OperatorSpec{Op: KindSwapValues, Key: o.First, Other: o.Second}
	case NumericDelta:
		return OperatorSpec{Op: KindNumericDelta, Key: o.Key, Delta: o.Delta}
	default:
		return OperatorSpec{Op: op.Kind()}
	}
}

func forbid(spec OperatorSpec, fields ...string) error {
	for _, f := range fields {
		set := false
		switch f {
		case "value":
			set = spec.Value != ""
		case "other":
			set = spec.Other != ""
		case "delta":
			set = spec.Delta != 0
		}
		if set {
			return fmt.Errorf("%s: field %q is not allowed", spec.Op, f)
		}
	}
	return nil
}
