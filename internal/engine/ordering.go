package engine

import (
	"github.com/FireFather/chesscore/internal/board"
)

// Stage scores for the move-ordering machine. Order matches the stage
// sequence a caller sees from repeated PickMove/scoreMove calls: hash move,
// mate killers, good captures, normal killers, bad captures, quiets.
const (
	stageHashMove      = 10000000
	stageMateKiller1   = 9500000
	stageMateKiller2   = 9400000
	stageGoodCapture   = 1000000
	stageKiller1       = 900000
	stageKiller2       = 800000
	stageBadCapture    = 700000
	stageThreatEvasion = 50000 // added on top of history for quiets escaping a threatened square
)

// historyClampBound is the magnitude all history-style tables are clamped to
// before a halving rescale kicks in, preventing overflow across a long game.
const historyClampBound = 400000

// MoveOrderer ranks moves in expected-cutoff order: hash move, mate
// killers, good captures (MVV-LVA), normal killers, bad captures,
// then quiets ranked by history + counter-move + threat-evasion + promotion
// bonus. Two killer categories are kept per ply (normal and mate, 4 slots
// total) because a move that delivered a mate score deserves trying before
// an ordinary beta-cutoff move at a sibling node.
type MoveOrderer struct {
	// Quiet killers: moves that caused a plain beta cutoff.
	killers [MaxPly][2]board.Move

	// Mate killers: quiet moves whose cutoff carried a mate-distance score.
	mateKillers [MaxPly][2]board.Move

	// History heuristic (indexed by [from][to]).
	history [64][64]int

	// Low-ply history: a second history table indexed by ply as well as
	// from/to, used to
	// stabilize root/near-root move ordering independent of the long-game
	// from/to table (which ages by halving and so is noisier near the root
	// of a fresh iterative-deepening pass).
	lowPlyHistory [16][64][64]int

	// Counter move heuristic (indexed by [piece][to]).
	counterMoves [12][64]board.Move

	// Capture history (indexed by [attackerPiece][toSquare][capturedPieceType]).
	captureHistory [12][64][6]int

	// Countermove history (indexed by [prevPiece][prevTo][movePiece][moveTo]).
	countermoveHistory [12][64][12][64]int

	// Continuation history (indexed by [prevPiece][prevTo], then
	// [movePiece][moveTo] through the PieceToHistory the search stack holds
	// a pointer to).
	continuationHistory [12][64]PieceToHistory
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets the move orderer for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
		mo.mateKillers[i][0] = board.NoMove
		mo.mateKillers[i][1] = board.NoMove
	}

	for i := range mo.history {
		for j := range mo.history[i] {
			mo.history[i][j] /= 2
		}
	}
	for p := range mo.lowPlyHistory {
		for i := range mo.lowPlyHistory[p] {
			for j := range mo.lowPlyHistory[p][i] {
				mo.lowPlyHistory[p][i][j] /= 2
			}
		}
	}

	for i := range mo.counterMoves {
		for j := range mo.counterMoves[i] {
			mo.counterMoves[i][j] = board.NoMove
		}
	}

	for i := range mo.captureHistory {
		for j := range mo.captureHistory[i] {
			for k := range mo.captureHistory[i][j] {
				mo.captureHistory[i][j][k] /= 2
			}
		}
	}

	for i := range mo.countermoveHistory {
		for j := range mo.countermoveHistory[i] {
			for k := range mo.countermoveHistory[i][j] {
				for l := range mo.countermoveHistory[i][j][k] {
					mo.countermoveHistory[i][j][k][l] /= 2
				}
			}
		}
	}

	mo.scaleContinuationHistory()
}

// ScoreMoves assigns scores to moves for ordering, with no counter-move,
// countermove-history, or threat-evasion context (used by quiescence, which
// has no prior-move continuation to key off of).
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ply, ttMove, board.NoMove)
	}
	return scores
}

// ScoreMovesWithCounter assigns scores including counter-move, countermove
// history, and threat-evasion bonuses. threatMove is the opponent's reply
// that refuted a failed null-move search at this node (board.NoMove if none
// was recorded); a quiet move whose origin matches threatMove's destination
// gets a bonus for plausibly evading that threat.
func (mo *MoveOrderer) ScoreMovesWithCounter(pos *board.Position, moves *board.MoveList, ply int, ttMove, prevMove, threatMove board.Move) []int {
	scores := make([]int, moves.Len())
	counterMove := mo.GetCounterMove(prevMove, pos)

	var prevPiece board.Piece = board.NoPiece
	if prevMove != board.NoMove {
		prevPiece = pos.PieceAt(prevMove.To())
	}

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		scores[i] = mo.scoreMove(pos, move, ply, ttMove, threatMove)

		// Counter-move bonus (after killers, before history).
		if move == counterMove && scores[i] < stageKiller2 {
			scores[i] = stageKiller2 - 10000 // just below second killer
		}

		if !move.IsCapture(pos) && !move.IsPromotion() && move != ttMove {
			movePiece := pos.PieceAt(move.From())
			cmhScore := mo.GetCountermoveHistoryScore(prevMove, prevPiece, movePiece, move.To())
			scores[i] += cmhScore / 2 // scale down to not dominate

			if ply < len(mo.lowPlyHistory) {
				scores[i] += mo.lowPlyHistory[ply][move.From()][move.To()] / 4
			}
		}
	}

	return scores
}

// scoreMove returns the ordering score for a single move.
func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove, threatMove board.Move) int {
	if m == ttMove {
		return stageHashMove
	}

	from := m.From()
	to := m.To()

	if m.IsCapture(pos) {
		attackerPiece := pos.PieceAt(from)
		if attackerPiece == board.NoPiece {
			return stageGoodCapture
		}
		attacker := attackerPiece.Type()

		var victim board.PieceType
		if m.IsEnPassant() {
			victim = board.Pawn
		} else {
			capturedPiece := pos.PieceAt(to)
			if capturedPiece == board.NoPiece {
				return stageGoodCapture
			}
			victim = capturedPiece.Type()
		}

		if victim >= board.King || attacker > board.King {
			return stageGoodCapture
		}

		// MVV-LVA as a true signed piece-value delta: what the capture
		// collects (victim plus any promotion gain) minus the piece
		// offering itself up.
		delta := captureValue(pos, m) - pieceValues[attacker]
		captureHistScore := mo.GetCaptureHistoryScore(attackerPiece, to, victim)

		// Speculative sacrifices go behind the killers, kept in delta
		// order among themselves.
		if delta < 0 {
			return stageBadCapture + delta*10 + (captureHistScore*int(historyScale()))/16
		}

		// Even trades and up. The bare victim value breaks delta ties
		// (QxQ ahead of PxP) without ever outweighing a full delta step.
		score := stageGoodCapture + delta*1000 + pieceValues[victim]
		score += (captureHistScore * int(historyScale())) / 4
		if delta > 0 {
			score += 10000 // clearly winning capture
		}
		// A sour capture history never pushes a sound capture out of its
		// stage band.
		if score < stageGoodCapture {
			score = stageGoodCapture
		}
		return score
	}

	if m.IsPromotion() {
		return stageGoodCapture - 1000 + int(m.Promotion())*100
	}

	if m == mo.mateKillers[ply][0] {
		return stageMateKiller1
	}
	if m == mo.mateKillers[ply][1] {
		return stageMateKiller2
	}
	if m == mo.killers[ply][0] {
		return stageKiller1
	}
	if m == mo.killers[ply][1] {
		return stageKiller2
	}

	score := int(float64(mo.history[from][to]) * historyScale())
	if threatMove != board.NoMove && from == threatMove.To() {
		score += stageThreatEvasion
	}
	return score
}

// historyScale reads the active Tunables.HistoryScale, defaulting to 1 if
// the engine hasn't installed tunables yet (zero value of Tunables).
func historyScale() float64 {
	if currentTunables.HistoryScale == 0 {
		return 1.0
	}
	return currentTunables.HistoryScale
}

// SortMoves sorts moves by their scores (descending).
func SortMoves(moves *board.MoveList, scores []int) {
	n := moves.Len()
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			moves.Swap(i, best)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// PickMove selects the best remaining move and moves it to position index.
// This allows lazy move sorting (only sort as much as needed).
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers adds a plain (non-mate) killer move at the given ply.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly {
		return
	}
	if mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateMateKillers adds a killer move whose beta cutoff carried a
// mate-distance score, stored in its own category so it is tried before the
// good-capture stage.
func (mo *MoveOrderer) UpdateMateKillers(m board.Move, ply int) {
	if ply >= MaxPly {
		return
	}
	if mo.mateKillers[ply][0] == m {
		return
	}
	mo.mateKillers[ply][1] = mo.mateKillers[ply][0]
	mo.mateKillers[ply][0] = m
}

// UpdateHistory updates the history score for a move, scaled by
// Tunables.HistoryScale.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int, isGood bool) {
	from := m.From()
	to := m.To()

	bonus := int(float64(depth*depth) * historyScale())
	if isGood {
		mo.history[from][to] += bonus
		if mo.history[from][to] > historyClampBound {
			for i := range mo.history {
				for j := range mo.history[i] {
					mo.history[i][j] /= 2
				}
			}
		}
	} else {
		mo.history[from][to] -= bonus
		if mo.history[from][to] < -historyClampBound {
			mo.history[from][to] = -historyClampBound
		}
	}
}

// UpdateLowPlyHistory updates the ply-indexed history table used to
// stabilize move ordering near the root, where the long-lived from/to
// history table hasn't accumulated enough signal yet this search.
func (mo *MoveOrderer) UpdateLowPlyHistory(m board.Move, ply, depth int, isGood bool) {
	if ply >= len(mo.lowPlyHistory) {
		return
	}
	from, to := m.From(), m.To()
	bonus := int(float64(depth*depth) * historyScale())
	if isGood {
		mo.lowPlyHistory[ply][from][to] += bonus
		if mo.lowPlyHistory[ply][from][to] > historyClampBound {
			for i := range mo.lowPlyHistory[ply] {
				for j := range mo.lowPlyHistory[ply][i] {
					mo.lowPlyHistory[ply][i][j] /= 2
				}
			}
		}
	} else {
		mo.lowPlyHistory[ply][from][to] -= bonus
		if mo.lowPlyHistory[ply][from][to] < -historyClampBound {
			mo.lowPlyHistory[ply][from][to] = -historyClampBound
		}
	}
}

// UpdateCounterMove updates the counter move table.
func (mo *MoveOrderer) UpdateCounterMove(prevMove, counterMove board.Move, pos *board.Position) {
	if prevMove == board.NoMove {
		return
	}
	piece := pos.PieceAt(prevMove.To())
	if piece == board.NoPiece {
		return
	}
	mo.counterMoves[piece][prevMove.To()] = counterMove
}

// GetCounterMove returns the counter move for a previous move.
func (mo *MoveOrderer) GetCounterMove(prevMove board.Move, pos *board.Position) board.Move {
	if prevMove == board.NoMove {
		return board.NoMove
	}
	piece := pos.PieceAt(prevMove.To())
	if piece == board.NoPiece {
		return board.NoMove
	}
	return mo.counterMoves[piece][prevMove.To()]
}

// GetHistoryScore returns the history score for a move. Used for history
// pruning in search.
func (mo *MoveOrderer) GetHistoryScore(m board.Move) int {
	return mo.history[m.From()][m.To()]
}

// UpdateCaptureHistory updates the capture history for a move, scaled by
// Tunables.HistoryScale.
func (mo *MoveOrderer) UpdateCaptureHistory(attackerPiece board.Piece, toSq board.Square, capturedType board.PieceType, depth int, isGood bool) {
	if attackerPiece == board.NoPiece || capturedType >= board.King {
		return
	}

	bonus := int(float64(depth*depth) * historyScale())
	if isGood {
		mo.captureHistory[attackerPiece][toSq][capturedType] += bonus
		if mo.captureHistory[attackerPiece][toSq][capturedType] > historyClampBound {
			mo.scaleCaptureHistory()
		}
	} else {
		mo.captureHistory[attackerPiece][toSq][capturedType] -= bonus
		if mo.captureHistory[attackerPiece][toSq][capturedType] < -historyClampBound {
			mo.captureHistory[attackerPiece][toSq][capturedType] = -historyClampBound
		}
	}
}

func (mo *MoveOrderer) scaleCaptureHistory() {
	for i := range mo.captureHistory {
		for j := range mo.captureHistory[i] {
			for k := range mo.captureHistory[i][j] {
				mo.captureHistory[i][j][k] /= 2
			}
		}
	}
}

// GetCaptureHistoryScore returns the capture history score for a capture move.
func (mo *MoveOrderer) GetCaptureHistoryScore(attackerPiece board.Piece, toSq board.Square, capturedType board.PieceType) int {
	if attackerPiece == board.NoPiece || capturedType >= board.King {
		return 0
	}
	return mo.captureHistory[attackerPiece][toSq][capturedType]
}

// UpdateCountermoveHistory updates the countermove history for a quiet move.
func (mo *MoveOrderer) UpdateCountermoveHistory(prevMove, goodMove board.Move, prevPiece, movePiece board.Piece, depth int, isGood bool) {
	if prevMove == board.NoMove || prevPiece == board.NoPiece || movePiece == board.NoPiece {
		return
	}

	prevTo := prevMove.To()
	moveTo := goodMove.To()
	bonus := int(float64(depth*depth) * historyScale())

	if isGood {
		mo.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] += bonus
		if mo.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] > historyClampBound {
			mo.scaleCountermoveHistory()
		}
	} else {
		mo.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] -= bonus
		if mo.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] < -historyClampBound {
			mo.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] = -historyClampBound
		}
	}
}

func (mo *MoveOrderer) scaleCountermoveHistory() {
	for i := range mo.countermoveHistory {
		for j := range mo.countermoveHistory[i] {
			for k := range mo.countermoveHistory[i][j] {
				for l := range mo.countermoveHistory[i][j][k] {
					mo.countermoveHistory[i][j][k][l] /= 2
				}
			}
		}
	}
}

// GetCountermoveHistoryScore returns the CMH score for a move given the previous move.
func (mo *MoveOrderer) GetCountermoveHistoryScore(prevMove board.Move, prevPiece, movePiece board.Piece, moveTo board.Square) int {
	if prevMove == board.NoMove || prevPiece == board.NoPiece || movePiece == board.NoPiece {
		return 0
	}
	return mo.countermoveHistory[prevPiece][prevMove.To()][movePiece][moveTo]
}
