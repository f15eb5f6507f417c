// Package campaign runs mutation-testing campaigns described in YAML.
//
// A campaign names a base snapshot, a set of invariants and a list of trials.
// Each trial is an ordered sequence of mutation operators. A trial is caught
// when at least one invariant stops holding after its operators are applied.
//
// # File Format
//
//	name: feature-flags
//	description: "Flag parsing rejects malformed config"
//	guard:
//	  max_run_len: 8
//	  max_batch_size: 1000
//	base:
//	  data:
//	    enabled: "true"
//	    retries: "3"
//	invariants:
//	  - name: retries-positive
//	    expr: NumberAtLeast("retries", 1)
//	  - name: shape
//	    cue: |
//	      enabled: "true" | "false"
//	trials:
//	  - name: drop-enabled
//	    mutations:
//	      - {op: remove_key, key: enabled}
//	  - name: zero-retries
//	    mutations:
//	      - {op: numeric_delta, key: retries, delta: -3}
//
// The base may instead be generated:
//
//	base:
//	  generate: {seed: 42, max_items: 10, max_depth: 2}
//
// # Ingress
//
// Trial count and per-trial operator counts are checked against the guard
// constraints before any trial runs. Everything after that point trusts the
// bounds.
//
// # Execution
//
// Trials run on a bounded worker pool. Every trial gets its own
// mutation.Tester over a private copy of the base; no tester is shared.
// Sequence numbers and run IDs come from injectable sources so results are
// reproducible in tests.
package campaign
