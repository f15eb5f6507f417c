// Package mutation applies defect-simulating transformations to keyed test
// data and measures whether correctness predicates notice them.
//
// A Tester owns one mutable Snapshot. Operators are applied in caller order
// and never fail: an operator that targets a missing key, or a value of the
// wrong shape, leaves the snapshot unchanged. This keeps every trial
// comparable for scoring.
//
// Detection is inverted on purpose. A predicate states an invariant that holds
// on correct data; DetectMutation reports true when the invariant is now
// broken, meaning a test asserting it would catch the mutation.
//
// A Tester is not safe for concurrent use. Parallel campaigns give each
// worker its own Clone.
package mutation
