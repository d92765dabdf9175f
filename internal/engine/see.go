package engine

import "github.com/FireFather/chesscore/internal/board"

// captureValue returns the material a capture collects before any reply: the
// victim's value plus the promotion gain if the move also promotes. Quiet
// non-promotion moves score 0. Shared by SEE's initial gain, quiescence
// delta pruning, and the move orderer's good/bad-capture split.
func captureValue(pos *board.Position, m board.Move) int {
	var value int
	if m.IsEnPassant() {
		value = PawnValue
	} else {
		victim := pos.PieceAt(m.To())
		if victim != board.NoPiece {
			value = pieceValues[victim.Type()]
		}
	}
	if m.IsPromotion() {
		value += pieceValues[m.Promotion()] - PawnValue
	}
	return value
}

// SEE (Static Exchange Evaluation) estimates the result of the capture
// sequence on m's destination square, assuming least-valuable-attacker
// replies. Returns the estimated gain/loss from the moving side's
// perspective; quiet moves score 0.
func SEE(pos *board.Position, m board.Move) int {
	attacker := pos.PieceAt(m.From())
	if attacker == board.NoPiece || !m.IsCapture(pos) {
		return 0
	}
	return seeSwap(pos, m.To(), m.From(), attacker, captureValue(pos, m))
}

// seeSwap runs the swap algorithm: alternate captures on target, each side
// always answering with its least valuable attacker, then negamax the gain
// ladder back to the root.
func seeSwap(pos *board.Position, target, excludeFrom board.Square, firstAttacker board.Piece, initialGain int) int {
	var gain [32]int
	d := 0
	gain[d] = initialGain

	// The initial attacker has left its square; sliders behind it see through.
	occupied := pos.AllOccupied &^ board.SquareBB(excludeFrom)

	attackerValue := pieceValues[firstAttacker.Type()]
	side := firstAttacker.Color().Other()

	for {
		d++
		// Capturing the previous attacker, net of everything after.
		gain[d] = attackerValue - gain[d-1]

		// Neither continuation can improve: the rest of the ladder is moot.
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}

		sq, pt := leastValuableAttacker(pos, target, side, occupied)
		if sq == board.NoSquare {
			break
		}

		occupied &^= board.SquareBB(sq)
		attackerValue = pieceValues[pt]
		side = side.Other()
	}

	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker returns the square and type of side's cheapest piece
// attacking target under the given occupancy, or NoSquare if none. Sliding
// attack sets are computed against the reduced occupancy, so x-ray attackers
// revealed by earlier exchanges are found without extra bookkeeping.
func leastValuableAttacker(pos *board.Position, target board.Square, side board.Color, occupied board.Bitboard) (board.Square, board.PieceType) {
	diag := board.BishopAttacks(target, occupied)
	line := board.RookAttacks(target, occupied)
	attacks := [6]board.Bitboard{
		board.Pawn:   board.PawnAttacks(target, side.Other()),
		board.Knight: board.KnightAttacks(target),
		board.Bishop: diag,
		board.Rook:   line,
		board.Queen:  diag | line,
		board.King:   board.KingAttacks(target),
	}

	for pt := board.Pawn; pt <= board.King; pt++ {
		if s := pos.Pieces[side][pt] & attacks[pt] & occupied; s != 0 {
			return s.LSB(), pt
		}
	}
	return board.NoSquare, board.Pawn
}
