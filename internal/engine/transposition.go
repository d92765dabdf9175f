package engine

import (
	"github.com/FireFather/chesscore/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTEntry is the decoded, verified view of a transposition table hit.
type TTEntry struct {
	BestMove board.Move // Best move found
	Score    int16      // Score (bounded by flag)
	Depth    int8       // Search depth
	Flag     TTFlag     // Type of bound
	PV       bool       // Was this a PV node when stored
}

// ttSlot is one physical table slot: a torn-write-tolerant pair of 64-bit
// words. Key holds hash XOR data, so a partially-written slot (only one
// word updated by a racing writer) fails the hash == Key^Data check on
// probe instead of returning corrupted content — no mutex needed around
// the shared table.
type ttSlot struct {
	key  uint64
	data uint64
}

// data bit layout (64 bits): move(16) | score(16) | depth(8) | flag(2) | pv(1) | age(6)
func packTTData(depth int, score int, flag TTFlag, move board.Move, pv bool, age uint8) uint64 {
	var d uint64
	d |= uint64(uint16(move))
	d |= uint64(uint16(int16(score))) << 16
	d |= uint64(uint8(depth)) << 32
	d |= uint64(flag&0x3) << 40
	if pv {
		d |= 1 << 42
	}
	d |= uint64(age&0x3f) << 43
	return d
}

func unpackTTData(d uint64) (depth int, score int, flag TTFlag, move board.Move, pv bool, age uint8) {
	move = board.Move(uint16(d))
	score = int(int16(uint16(d >> 16)))
	depth = int(int8(uint8(d >> 32)))
	flag = TTFlag((d >> 40) & 0x3)
	pv = (d>>42)&1 != 0
	age = uint8((d >> 43) & 0x3f)
	return
}

// ttCluster groups 4 slots under one index; a probe/store only ever scans
// within its own cluster.
const ttClusterSize = 4

type ttCluster struct {
	slots [ttClusterSize]ttSlot
}

// TranspositionTable is a hash table for storing search results, organized
// as clusters of ttClusterSize slots per bucket.
type TranspositionTable struct {
	clusters []ttCluster
	mask     uint64
	age      uint8

	// Statistics
	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	clusterSize := uint64(ttClusterSize * 16) // 2 uint64 words per slot
	numClusters := (uint64(sizeMB) * 1024 * 1024) / clusterSize
	numClusters = roundDownToPowerOf2(numClusters)
	if numClusters == 0 {
		numClusters = 1
	}

	return &TranspositionTable{
		clusters: make([]ttCluster, numClusters),
		mask:     numClusters - 1,
	}
}

// Resize reallocates the table for a new size in MB, discarding all stored
// entries. Workers hold a pointer to the TranspositionTable itself rather
// than its backing slice, so a resize is visible to every worker without
// re-wiring them.
func (tt *TranspositionTable) Resize(sizeMB int) {
	clusterSize := uint64(ttClusterSize * 16)
	numClusters := (uint64(sizeMB) * 1024 * 1024) / clusterSize
	numClusters = roundDownToPowerOf2(numClusters)
	if numClusters == 0 {
		numClusters = 1
	}
	tt.clusters = make([]ttCluster, numClusters)
	tt.mask = numClusters - 1
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise returns empty entry and false.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	cluster := &tt.clusters[hash&tt.mask]
	for i := range cluster.slots {
		slot := &cluster.slots[i]
		if slot.data != 0 && slot.key^slot.data == hash {
			depth, score, flag, move, pv, _ := unpackTTData(slot.data)
			tt.hits++
			return TTEntry{BestMove: move, Score: int16(score), Depth: int8(depth), Flag: flag, PV: pv}, true
		}
	}

	return TTEntry{}, false
}

// Store saves a position in the transposition table. Replacement within a
// cluster cascades: an empty slot wins first, then a slot already holding
// this exact key (refreshed if the new data is at least as deep or was a
// PV node), and only otherwise the slot with the lowest (age, depth)
// priority is evicted.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	tt.StorePV(hash, depth, score, flag, bestMove, false)
}

// StorePV is Store with an explicit PV flag, recorded so a later replacement
// decision can favor keeping nodes that were on the principal variation.
func (tt *TranspositionTable) StorePV(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move, pv bool) {
	cluster := &tt.clusters[hash&tt.mask]

	var victim *ttSlot
	victimPriority := int(^uint(0) >> 1) // max int

	for i := range cluster.slots {
		slot := &cluster.slots[i]

		if slot.data == 0 {
			victim = slot
			break
		}

		if slot.key^slot.data == hash {
			existingDepth, _, _, _, oldPV, _ := unpackTTData(slot.data)
			victim = slot
			if depth >= existingDepth || pv || oldPV {
				break
			}
			// Same key but shallower, non-PV: still the best fallback
			// victim if nothing else in the cluster fits better.
			continue
		}

		existingDepth, _, _, _, existingPV, existingAge := unpackTTData(slot.data)
		priority := existingDepth
		if existingPV {
			priority += 1000 // PV nodes are expensive to regenerate; protect them
		}
		ageDelta := int(tt.age-existingAge) & 0x3f
		priority -= ageDelta * 8 // older generations lose priority fast
		if priority < victimPriority {
			victimPriority = priority
			victim = slot
		}
	}

	if victim == nil {
		victim = &cluster.slots[0]
	}

	data := packTTData(depth, score, flag, bestMove, pv, tt.age)
	victim.data = data
	victim.key = hash ^ data
}

// NewSearch increments the age counter for a new search.
// This helps with replacement decisions.
func (tt *TranspositionTable) NewSearch() {
	tt.age = (tt.age + 1) & 0x3f
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = ttCluster{}
	}
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (tt *TranspositionTable) HashFull() int {
	used := 0
	sampleSize := 250 // 250 clusters * 4 slots = 1000 slots sampled
	if uint64(sampleSize) > uint64(len(tt.clusters)) {
		sampleSize = len(tt.clusters)
	}

	for i := 0; i < sampleSize; i++ {
		for _, slot := range tt.clusters[i].slots {
			if slot.data == 0 {
				continue
			}
			_, _, _, _, _, age := unpackTTData(slot.data)
			if age == tt.age {
				used++
			}
		}
	}
	if sampleSize == 0 {
		return 0
	}
	return (used * 1000) / (sampleSize * ttClusterSize)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of clusters in the table.
func (tt *TranspositionTable) Size() uint64 {
	return uint64(len(tt.clusters))
}

// AdjustScoreFromTT adjusts a score read from the transposition table.
// Mate scores need to be adjusted based on ply distance.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage in the transposition table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
