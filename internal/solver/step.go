package solver

// Step is one unit of search work with a two-phase contract: Take starts the
// step, Resume continues it after suspended followups complete. Both receive
// whether the previously finished step failed, and both report either
// completion or suspension with followup steps.
type Step interface {
	// Setup runs once, before the first Take.
	Setup()

	// Take starts or continues the step's own work.
	Take(prevFailed bool) StepResult

	// Resume runs after all followups of the last suspension completed,
	// with prevFailed reporting the last followup's outcome.
	Resume(prevFailed bool) StepResult
}

type resultKind uint8

const (
	resultDone resultKind = iota + 1
	resultSuspended
)

// StepResult is the tagged outcome of a Take or Resume invocation.
type StepResult struct {
	kind      resultKind
	success   bool
	followups []Step
}

// Done finishes the step; the parent's Resume sees prevFailed = !success.
func Done(success bool) StepResult {
	return StepResult{kind: resultDone, success: success}
}

// Suspend yields control: the driver runs the followups in order, then
// resumes this step.
func Suspend(followups ...Step) StepResult {
	return StepResult{kind: resultSuspended, followups: followups}
}

// run drives the step stack to completion and reports the root's success.
// This is the iterative replacement for recursive descent: suspension pushes
// followups, completion pops a frame and hands the outcome to whatever is
// now on top (a sibling's Take or the parent's Resume).
func (st *state) run(root Step) bool {
	type frame struct {
		step  Step
		taken bool
	}
	stack := []frame{{step: root}}
	prevFailed := false

	for len(stack) > 0 {
		st.depth = len(stack)
		top := &stack[len(stack)-1]

		var res StepResult
		if !top.taken {
			top.taken = true
			top.step.Setup()
			res = top.step.Take(prevFailed)
		} else {
			res = top.step.Resume(prevFailed)
		}

		switch res.kind {
		case resultDone:
			stack = stack[:len(stack)-1]
			prevFailed = !res.success
		case resultSuspended:
			for i := len(res.followups) - 1; i >= 0; i-- {
				stack = append(stack, frame{step: res.followups[i]})
			}
			prevFailed = false
		default:
			panic("solvent: internal error: step returned no result")
		}
	}
	return !prevFailed
}
