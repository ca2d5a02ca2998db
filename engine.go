package transitalign

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theoremus-urban-solutions/transit-align/blocking"
	"github.com/theoremus-urban-solutions/transit-align/config"
	"github.com/theoremus-urban-solutions/transit-align/record"
	"github.com/theoremus-urban-solutions/transit-align/resolve"
	"github.com/theoremus-urban-solutions/transit-align/scoring"
)

// Dataset is the input adapter contract: a finite batch of raw records
// tagged with a stable dataset name. The engine never re-reads a dataset
// mid-pass.
type Dataset struct {
	Name    string
	Records []record.RawRecord
}

// Engine runs one batch alignment pass: normalize, block, score, resolve,
// build. Engines hold configuration only; no state survives a run.
type Engine struct {
	cfg config.AppConfig
}

// NewEngine validates the matching configuration and builds an engine.
// Invalid weights or thresholds fail here, before any alignment work.
func NewEngine(cfg config.AppConfig) (*Engine, error) {
	if err := config.ValidateMatching(cfg.Matching); err != nil {
		return nil, fmt.Errorf("matching configuration: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Run aligns the datasets and returns the consolidated result. Per-record
// normalization problems are skipped and logged; only an invalid final
// partition aborts the run.
func (e *Engine) Run(datasets []Dataset) (*Result, error) {
	var normalized []*record.NormalizedRecord
	datasetOrder := make([]string, 0, len(datasets))
	seen := map[string]struct{}{}

	for _, ds := range datasets {
		datasetOrder = append(datasetOrder, ds.Name)
		warnings := NewWarningAggregator()

		recs := parallelMap(ds.Records, func(raw record.RawRecord) *record.NormalizedRecord {
			if raw.Dataset == "" {
				raw.Dataset = ds.Name
			}
			rec, err := record.Normalize(raw)
			if err != nil {
				return nil
			}
			return &rec
		})

		for i, rec := range recs {
			if rec == nil {
				warnings.Add(WarningMissingSourceID, fmt.Sprintf("%s[%d]", ds.Name, i))
				continue
			}
			if _, dup := seen[rec.Key()]; dup {
				warnings.Add(WarningDuplicateSourceID, rec.Key())
				continue
			}
			seen[rec.Key()] = struct{}{}
			if !rec.HasCoordinates && (ds.Records[i].Latitude != "" || ds.Records[i].Longitude != "") {
				warnings.Add(WarningBadCoordinates, rec.Key())
			}
			if rec.DisplayName == "" {
				warnings.Add(WarningEmptyName, rec.Key())
			}
			normalized = append(normalized, rec)
		}
		warnings.LogAll(ds.Name)
	}

	idx := blocking.Build(normalized, e.cfg.Matching.SpatialMaxRadiusMeters)
	pairs := idx.CandidatePairs()
	log.Printf("Aligning %d records across %d datasets (%d candidate pairs)",
		len(normalized), len(datasets), len(pairs))

	scorer := scoring.NewScorer(e.cfg.Matching)
	scored := parallelMap(pairs, scorer.ScorePair)

	resolver := resolve.NewResolver(e.cfg.Matching, func(a, b *record.NormalizedRecord) float64 {
		return scorer.Score(a, b).Score
	})
	clusters := resolver.Resolve(normalized, scored)

	result, err := buildResult(normalized, clusters, datasetOrder)
	if err != nil {
		return nil, err
	}
	log.Printf("Resolved %d records into %d entities", len(normalized), len(result.Entities))
	return result, nil
}

// parallelMap applies f to every element on all CPUs. Results land at the
// input index, so output order does not depend on scheduling.
func parallelMap[In, Out any](in []In, f func(In) Out) []Out {
	out := make([]Out, len(in))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(in) {
		workers = len(in)
	}
	if workers <= 1 {
		for i, v := range in {
			out[i] = f(v)
		}
		return out
	}
	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(in) {
					return
				}
				out[i] = f(in[i])
			}
		}()
	}
	wg.Wait()
	return out
}
