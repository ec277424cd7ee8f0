package catalog

import "sort"

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

type fusedHit struct {
	pos   int
	score float64
}

// fuseRRF merges two rankings of hadith positions via Reciprocal Rank Fusion.
// score(d) = sum of 1/(k + rank_i(d)) for each ranking where d appears.
// Ties keep catalog order so results are deterministic.
func fuseRRF(keyword, fuzzy []int, topK int) []fusedHit {
	scores := make(map[int]float64, len(keyword)+len(fuzzy))
	for _, ranking := range [][]int{keyword, fuzzy} {
		for rank, pos := range ranking {
			scores[pos] += 1.0 / float64(rrfK+rank+1)
		}
	}

	results := make([]fusedHit, 0, len(scores))
	for pos, s := range scores {
		results = append(results, fusedHit{pos: pos, score: s})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].pos < results[j].pos
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
