package blocking

import (
	"math"
	"sort"

	"github.com/theoremus-urban-solutions/transit-align/record"
)

// metersPerDegree approximates one degree of latitude. Longitude degrees are
// shorter away from the equator; the doubled cell edge in Build keeps two
// records within the match radius inside adjacent cells up to high latitudes.
const metersPerDegree = 111000.0

// CandidatePair is an ordered pair of records sharing at least one block.
// A is always lexicographically before B (dataset, then source id), and the
// two sides always come from different datasets.
type CandidatePair struct {
	A *record.NormalizedRecord
	B *record.NormalizedRecord
}

// Index buckets records by derived block keys.
type Index struct {
	records []*record.NormalizedRecord
	cells   map[[2]int][]int
	names   map[string][]int
	ids     map[string][]int

	cellDeg float64
}

// Build indexes the records. radiusMeters is the spatial match radius; the
// grid cell edge is twice that so the 3x3 neighbourhood probe covers it.
func Build(records []*record.NormalizedRecord, radiusMeters float64) *Index {
	cellDeg := 2 * radiusMeters / metersPerDegree
	if cellDeg < 1e-4 {
		cellDeg = 1e-4
	}
	idx := &Index{
		records: records,
		cells:   map[[2]int][]int{},
		names:   map[string][]int{},
		ids:     map[string][]int{},
		cellDeg: cellDeg,
	}
	for i, r := range records {
		if r.HasCoordinates {
			c := idx.cellOf(r.Latitude, r.Longitude)
			idx.cells[c] = append(idx.cells[c], i)
		}
		if tok := r.FirstNameToken(); tok != "" {
			idx.names[tok] = append(idx.names[tok], i)
		}
		for _, aux := range r.AuxIdentifiers {
			idx.ids[aux] = append(idx.ids[aux], i)
		}
	}
	return idx
}

func (idx *Index) cellOf(lat, lon float64) [2]int {
	return [2]int{
		int(math.Floor(lat / idx.cellDeg)),
		int(math.Floor(lon / idx.cellDeg)),
	}
}

// CandidatePairs returns every deduplicated cross-dataset pair sharing a
// block, in deterministic order. A pair found in several shared blocks is
// emitted once.
func (idx *Index) CandidatePairs() []CandidatePair {
	seen := map[[2]int]struct{}{}
	var pairs []CandidatePair

	add := func(i, j int) {
		if i == j {
			return
		}
		if i > j {
			i, j = j, i
		}
		a, b := idx.records[i], idx.records[j]
		if a.Dataset == b.Dataset {
			return
		}
		if !compatibleCategory(a.Category, b.Category) {
			return
		}
		if _, ok := seen[[2]int{i, j}]; ok {
			return
		}
		seen[[2]int{i, j}] = struct{}{}
		if b.Key() < a.Key() {
			a, b = b, a
		}
		pairs = append(pairs, CandidatePair{A: a, B: b})
	}

	for i, r := range idx.records {
		if r.HasCoordinates {
			c := idx.cellOf(r.Latitude, r.Longitude)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for _, j := range idx.cells[[2]int{c[0] + dx, c[1] + dy}] {
						add(i, j)
					}
				}
			}
		}
		if tok := r.FirstNameToken(); tok != "" {
			for _, j := range idx.names[tok] {
				add(i, j)
			}
		}
		for _, aux := range r.AuxIdentifiers {
			for _, j := range idx.ids[aux] {
				add(i, j)
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A.Key() != pairs[j].A.Key() {
			return pairs[i].A.Key() < pairs[j].A.Key()
		}
		return pairs[i].B.Key() < pairs[j].B.Key()
	})
	return pairs
}

// compatibleCategory allows a pair when both sides agree on category or at
// least one side does not declare one.
func compatibleCategory(a, b string) bool {
	return a == "" || b == "" || a == b
}
