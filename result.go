package transitalign

import (
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/transit-align/record"
	"github.com/theoremus-urban-solutions/transit-align/resolve"
)

// SourceRef names one source record subsumed by a canonical entity.
type SourceRef struct {
	Dataset  string `json:"dataset"`
	SourceID string `json:"sourceId"`
}

// Entity is the synthesized canonical representative of one alignment
// cluster, with full provenance.
type Entity struct {
	ID          string     `json:"id"`
	Name        string     `json:"name,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Category    string     `json:"category,omitempty"`
	Identifiers []string   `json:"identifiers,omitempty"`
	Sources     []SourceRef `json:"sources"`
}

// Result is the terminal artifact of an alignment pass: the full partition of
// all input records into canonical entities. Ownership passes to the output
// sink.
type Result struct {
	Datasets []string `json:"datasets"`
	Entities []Entity `json:"entities"`
}

// PartitionError reports a record that appears in no cluster or in more than
// one. It indicates an internal bug and is never silently repaired.
type PartitionError struct {
	Key   string
	Count int
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("invalid partition: record %s assigned to %d clusters", e.Key, e.Count)
}

// buildResult assembles clusters into the exportable result. datasetOrder is
// the load order, used to break completeness ties when electing the canonical
// representative.
func buildResult(records []*record.NormalizedRecord, clusters []resolve.Cluster, datasetOrder []string) (*Result, error) {
	if err := validatePartition(records, clusters); err != nil {
		return nil, err
	}

	orderOf := make(map[string]int, len(datasetOrder))
	for i, name := range datasetOrder {
		orderOf[name] = i
	}

	res := &Result{Datasets: datasetOrder, Entities: make([]Entity, 0, len(clusters))}
	for i, c := range clusters {
		res.Entities = append(res.Entities, synthesize(fmt.Sprintf("ENT_%06d", i+1), c, orderOf))
	}
	return res, nil
}

func validatePartition(records []*record.NormalizedRecord, clusters []resolve.Cluster) error {
	counts := make(map[string]int, len(records))
	for _, c := range clusters {
		for _, m := range c.Members {
			counts[m.Key()]++
		}
	}
	for _, r := range records {
		if counts[r.Key()] != 1 {
			return &PartitionError{Key: r.Key(), Count: counts[r.Key()]}
		}
	}
	for key, n := range counts {
		if n != 1 {
			return &PartitionError{Key: key, Count: n}
		}
	}
	return nil
}

// synthesize elects the canonical representative and merges attributes.
// Display name and category come from the member with the most complete
// attribute set (ties: earliest-loaded dataset, then source id); coordinates
// are the centroid of members that have them.
func synthesize(id string, c resolve.Cluster, orderOf map[string]int) Entity {
	rep := c.Members[0]
	for _, m := range c.Members[1:] {
		if better(m, rep, orderOf) {
			rep = m
		}
	}

	e := Entity{ID: id, Name: rep.DisplayName, Category: rep.Category}

	var latSum, lonSum float64
	var coordCount int
	idSet := map[string]struct{}{}
	for _, m := range c.Members {
		if m.HasCoordinates {
			latSum += m.Latitude
			lonSum += m.Longitude
			coordCount++
		}
		if e.Category == "" && m.Category != "" {
			e.Category = m.Category
		}
		for _, aux := range m.AuxIdentifiers {
			idSet[aux] = struct{}{}
		}
		e.Sources = append(e.Sources, SourceRef{Dataset: m.Dataset, SourceID: m.SourceID})
	}
	if coordCount > 0 {
		lat := latSum / float64(coordCount)
		lon := lonSum / float64(coordCount)
		e.Latitude = &lat
		e.Longitude = &lon
	}
	for aux := range idSet {
		e.Identifiers = append(e.Identifiers, aux)
	}
	sort.Strings(e.Identifiers)
	sort.Slice(e.Sources, func(i, j int) bool {
		if e.Sources[i].Dataset != e.Sources[j].Dataset {
			return e.Sources[i].Dataset < e.Sources[j].Dataset
		}
		return e.Sources[i].SourceID < e.Sources[j].SourceID
	})
	return e
}

func better(a, b *record.NormalizedRecord, orderOf map[string]int) bool {
	if ca, cb := a.Completeness(), b.Completeness(); ca != cb {
		return ca > cb
	}
	if oa, ob := orderOf[a.Dataset], orderOf[b.Dataset]; oa != ob {
		return oa < ob
	}
	return a.SourceID < b.SourceID
}
