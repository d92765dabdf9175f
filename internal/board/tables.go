package board

import "math"

// Reductions holds the precomputed late-move-reduction table, indexed
// [pv][improving][depth][moveCount]. Populated once at startup by a
// logarithmic rule in depth and move count.
var Reductions [2][2][64][64]int

func init() {
	for d := 0; d < 64; d++ {
		for m := 0; m < 64; m++ {
			small := math.Log(float64(d+1)) * math.Log(float64(m+1)) / 2
			big := 0.25 + math.Log(float64(d+1))*math.Log(float64(m+1))/1.5

			pvImproving := int(math.Round(small))
			if pvImproving < 0 {
				pvImproving = 0
			}
			pvNotImproving := int(math.Round(big))
			if pvNotImproving < 0 {
				pvNotImproving = 0
			}

			Reductions[1][1][d][m] = pvImproving
			Reductions[1][0][d][m] = pvNotImproving
			Reductions[0][1][d][m] = pvImproving + 1
			Reductions[0][0][d][m] = pvNotImproving + 1
		}
	}
}
