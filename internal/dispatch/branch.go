package dispatch

// Branch identifies the output-resolution path taken by one dispatch.
type Branch int

const (
	// BranchDirect: the output already had the target precision.
	BranchDirect Branch = iota
	// BranchShrink: the output was above target and was shrunk destructively.
	BranchShrink
	// BranchSteal: a movable operand's storage became the output.
	BranchSteal
	// BranchResize: the output was resized keeping its value.
	BranchResize
	// BranchReturnSteal: a movable operand was moved out as the result.
	BranchReturnSteal
	// BranchReturnFresh: the result was freshly allocated.
	BranchReturnFresh
	// BranchSplit: a two-output operation ran.
	BranchSplit
)

var branchNames = [...]string{
	BranchDirect:      "direct",
	BranchShrink:      "shrink",
	BranchSteal:       "steal",
	BranchResize:      "resize",
	BranchReturnSteal: "return_steal",
	BranchReturnFresh: "return_fresh",
	BranchSplit:       "split",
}

// Branches lists every branch, in declaration order.
var Branches = []Branch{
	BranchDirect, BranchShrink, BranchSteal, BranchResize,
	BranchReturnSteal, BranchReturnFresh, BranchSplit,
}

// String returns the snake_case name of the branch.
func (b Branch) String() string {
	if b < 0 || int(b) >= len(branchNames) {
		return "unknown"
	}
	return branchNames[b]
}

// Recorder observes every successful dispatch. Implementations must be safe
// for concurrent use because engines are shared between goroutines.
type Recorder interface {
	Record(op string, branch Branch, prec uint)
}
