package resolve

import (
	"sort"

	"github.com/theoremus-urban-solutions/transit-align/config"
	"github.com/theoremus-urban-solutions/transit-align/record"
	"github.com/theoremus-urban-solutions/transit-align/scoring"
)

// Cluster is a set of records believed to denote one real-world entity.
// Members are sorted by record key and immutable once emitted.
type Cluster struct {
	Members []*record.NormalizedRecord
}

// ScoreFunc computes the composite similarity of two records. The resolver
// uses it for member pairs that were never candidate pairs, e.g. two records
// joined transitively through a third.
type ScoreFunc func(a, b *record.NormalizedRecord) float64

// Resolver groups records into alignment clusters.
type Resolver struct {
	threshold  float64
	minCluster float64
	score      ScoreFunc
}

// NewResolver builds a resolver from a validated matching configuration.
func NewResolver(cfg config.MatchingConfig, score ScoreFunc) *Resolver {
	return &Resolver{
		threshold:  cfg.MatchThreshold,
		minCluster: cfg.MinClusterThreshold,
		score:      score,
	}
}

// Resolve partitions all records into clusters. Every record lands in exactly
// one cluster; unmatched records become singletons.
func (r *Resolver) Resolve(records []*record.NormalizedRecord, pairs []scoring.ScoredPair) []Cluster {
	idxOf := make(map[string]int, len(records))
	for i, rec := range records {
		idxOf[rec.Key()] = i
	}

	cache := make(map[[2]int]float64, len(pairs))
	pairScore := func(i, j int) float64 {
		if i > j {
			i, j = j, i
		}
		if s, ok := cache[[2]int{i, j}]; ok {
			return s
		}
		s := r.score(records[i], records[j])
		cache[[2]int{i, j}] = s
		return s
	}

	uf := newUnionFind(len(records))
	for _, p := range pairs {
		i, j := idxOf[p.A.Key()], idxOf[p.B.Key()]
		if i > j {
			i, j = j, i
		}
		cache[[2]int{i, j}] = p.Score
		if p.Score >= r.threshold && records[i].Dataset != records[j].Dataset {
			uf.union(i, j)
		}
	}

	components := map[int][]int{}
	for i := range records {
		root := uf.find(i)
		components[root] = append(components[root], i)
	}
	roots := make([]int, 0, len(components))
	for root := range components {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	var clusters []Cluster
	for _, root := range roots {
		members := components[root]
		sort.Slice(members, func(a, b int) bool {
			return records[members[a]].Key() < records[members[b]].Key()
		})
		kept, split := r.guard(records, members, pairScore)
		clusters = append(clusters, toCluster(records, kept))
		for _, i := range split {
			clusters = append(clusters, toCluster(records, []int{i}))
		}
	}

	sort.Slice(clusters, func(a, b int) bool {
		return clusters[a].Members[0].Key() < clusters[b].Members[0].Key()
	})
	return clusters
}

// guard re-validates a component. Chain merges are cut by splitting off any
// member whose minimum pairwise score to every other member is below the
// minimum-cluster threshold; afterwards at most one record per dataset
// remains, the one best connected to the rest of the cluster.
func (r *Resolver) guard(records []*record.NormalizedRecord, members []int, pairScore func(i, j int) float64) (kept, split []int) {
	kept = members

	for len(kept) > 2 {
		// Split victim: lowest minimum pairwise score; among equals the
		// weaker best edge loses, then record key order decides.
		worst, worstMin, worstMax := -1, 0.0, 0.0
		for _, i := range kept {
			min, max := 1.0, 0.0
			for _, j := range kept {
				if i == j {
					continue
				}
				s := pairScore(i, j)
				if s < min {
					min = s
				}
				if s > max {
					max = s
				}
			}
			if worst == -1 || min < worstMin || (min == worstMin && max < worstMax) {
				worst, worstMin, worstMax = i, min, max
			}
		}
		if worstMin >= r.minCluster {
			break
		}
		kept = remove(kept, worst)
		split = append(split, worst)
	}

	for {
		dup := sameDatasetLoser(records, kept, pairScore)
		if dup == -1 {
			break
		}
		kept = remove(kept, dup)
		split = append(split, dup)
	}

	sort.Ints(split)
	return kept, split
}

// sameDatasetLoser returns a member to split off when two cluster members
// come from the same dataset, or -1. The member with the strongest link to
// records of other datasets stays; ties break on record key.
func sameDatasetLoser(records []*record.NormalizedRecord, members []int, pairScore func(i, j int) float64) int {
	byDataset := map[string][]int{}
	for _, i := range members {
		ds := records[i].Dataset
		byDataset[ds] = append(byDataset[ds], i)
	}
	datasets := make([]string, 0, len(byDataset))
	for ds, dup := range byDataset {
		if len(dup) > 1 {
			datasets = append(datasets, ds)
		}
	}
	if len(datasets) == 0 {
		return -1
	}
	sort.Strings(datasets)
	dup := byDataset[datasets[0]]

	best, bestScore := -1, -1.0
	for _, i := range dup {
		max := 0.0
		for _, j := range members {
			if records[j].Dataset == records[i].Dataset {
				continue
			}
			if s := pairScore(i, j); s > max {
				max = s
			}
		}
		if max > bestScore || (max == bestScore && records[i].Key() < records[best].Key()) {
			best, bestScore = i, max
		}
	}
	for _, i := range dup {
		if i != best {
			return i
		}
	}
	return -1
}

func remove(members []int, victim int) []int {
	out := members[:0:0]
	for _, i := range members {
		if i != victim {
			out = append(out, i)
		}
	}
	return out
}

func toCluster(records []*record.NormalizedRecord, members []int) Cluster {
	c := Cluster{Members: make([]*record.NormalizedRecord, 0, len(members))}
	for _, i := range members {
		c.Members = append(c.Members, records[i])
	}
	sort.Slice(c.Members, func(a, b int) bool { return c.Members[a].Key() < c.Members[b].Key() })
	return c
}
