// Package trace is the solver's debug side-channel: a lightweight event
// tracer that records solver activity (solve boundaries, splits, component
// work, individual binding and choice attempts) without participating in
// correctness.
//
// Events carry a scope (solve/step/attempt) filtered by the configured
// level, and can be stored in a bounded in-memory ring, streamed to a
// writer, or both. The text format mirrors the solver's nesting with
// two-space indentation per search depth, so a debug trace reads like the
// parenthesized exploration log of the search itself:
//
//	(component:0
//	  (binding T1 := int
//	    (split components=1
//	    )
//	  )
//	  found solution [zero]
//	)
//
// Tracing is always best-effort: a failing sink never disturbs solving.
package trace
