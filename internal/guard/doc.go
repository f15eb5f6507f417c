// Package guard enforces bounded-latency limits at ingress.
//
// Quantities (operator run lengths, batch sizes) are checked once, when data
// enters the toolkit, and never again downstream. Code that receives a
// Sized value or a nil error from a Validator may assume the bound holds.
//
// # Two Tiers
//
// Runtime tier: Validator checks a quantity against Constraints and returns a
// *ConstraintError on violation.
//
// Declaration tier: when the capacity is fixed at the call site, DeclareRun or
// DeclareBatch proves the capacity against the maximum before any data
// exists. The resulting Shape wraps data of exactly that length into a Sized
// container. Sized has no exported constructor, so holding one is proof that
// both checks passed.
//
//	var pairShape = guard.MustDeclareRun[string](2, guard.DefaultConstraints())
//
//	func handle(items []string) error {
//	    run, err := pairShape.Wrap(items)
//	    if err != nil {
//	        return err
//	    }
//	    process(run) // no further checks
//	    return nil
//	}
//
// Package-level MustDeclare* calls panic during program initialisation, which
// is the earliest point Go offers to reject an oversized capacity.
package guard
