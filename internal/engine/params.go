package engine

// Search feature toggles. All on for play; individual techniques can be
// switched off when measuring their contribution in self-play.
const (
	EnableRFP             = true // reverse futility (static null move) pruning
	EnableRazoring        = true
	EnableNMP             = true // null move pruning
	EnableProbcut         = true
	EnableMulticut        = true
	EnableFutilityPruning = true
	EnableLMP             = true // late move pruning
	EnableSEEPruning      = true
	EnableHistoryPruning  = true
	EnableSingularExt     = true
	EnableThreatExt       = true
	EnableHindsightDepth  = true // shrink depth when the parent's reduction proved safe
)

const (
	// Probcut runs from this depth; shallower nodes are cheap enough to
	// search normally.
	probcutDepth = 5

	// Multi-cut: at depth >= multicutDepth, try up to multicutMoves moves
	// at reduced depth; multicutRequired fail-highs prove a beta cutoff.
	multicutDepth    = 8
	multicutMoves    = 6
	multicutRequired = 3

	// Quiet moves with a history score below this are skipped at shallow
	// depth; they have repeatedly failed to cut off anywhere in the tree.
	historyPruningThreshold = -2000

	// Threat extension: extend when a hanging piece worth at least the
	// threshold (or a harassed queen) is detected, from this depth up.
	threatExtensionMinDepth  = 6
	threatExtensionThreshold = RookValue

	// Quiescence lazy cutoff: if bare material is already this far outside
	// the window, the full evaluation cannot bring it back.
	lazyEvalMargin = 1100
)

// lmpThreshold[depth] caps how many quiets get searched at shallow depth
// before late move pruning skips the rest (scaled down when not improving).
var lmpThreshold = [8]int{0, 4, 6, 9, 13, 18, 24, 31}
