package scoring

import (
	"github.com/agnivade/levenshtein"

	"github.com/theoremus-urban-solutions/transit-align/blocking"
	"github.com/theoremus-urban-solutions/transit-align/config"
	"github.com/theoremus-urban-solutions/transit-align/record"
)

// Breakdown carries the per-dimension scores behind a composite score.
// A dimension that could not be evaluated has Present == false and its score
// set to zero.
type Breakdown struct {
	Name              float64 `json:"name"`
	Spatial           float64 `json:"spatial"`
	Identifier        float64 `json:"identifier"`
	NamePresent       bool    `json:"namePresent"`
	SpatialPresent    bool    `json:"spatialPresent"`
	IdentifierPresent bool    `json:"identifierPresent"`
}

// ScoredPair is a candidate pair plus its composite similarity in [0,1].
type ScoredPair struct {
	A         *record.NormalizedRecord
	B         *record.NormalizedRecord
	Score     float64
	Breakdown Breakdown
}

// Scorer computes composite similarities under a fixed configuration.
type Scorer struct {
	cfg config.MatchingConfig
}

// NewScorer builds a scorer. The configuration is assumed validated.
func NewScorer(cfg config.MatchingConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// ScorePair scores a candidate pair.
func (s *Scorer) ScorePair(p blocking.CandidatePair) ScoredPair {
	return s.Score(p.A, p.B)
}

// Score computes the composite similarity of two records. Symmetric:
// Score(a,b) == Score(b,a).
func (s *Scorer) Score(a, b *record.NormalizedRecord) ScoredPair {
	sp := ScoredPair{A: a, B: b}

	if sharesIdentifier(a, b) {
		// Exact external cross-reference outranks all fuzzy evidence.
		sp.Breakdown = Breakdown{Identifier: 1, IdentifierPresent: true}
		sp.Score = 1
		return sp
	}

	var weightSum, weighted float64

	if a.CleanName != "" && b.CleanName != "" {
		sp.Breakdown.NamePresent = true
		sp.Breakdown.Name = nameSimilarity(a.CleanName, b.CleanName)
		weightSum += s.cfg.NameWeight
		weighted += s.cfg.NameWeight * sp.Breakdown.Name
	}

	if a.HasCoordinates && b.HasCoordinates {
		sp.Breakdown.SpatialPresent = true
		sp.Breakdown.Spatial = s.spatialSimilarity(a, b)
		weightSum += s.cfg.SpatialWeight
		weighted += s.cfg.SpatialWeight * sp.Breakdown.Spatial
	}

	if len(a.AuxIdentifiers) > 0 && len(b.AuxIdentifiers) > 0 {
		// Both sides declare external identifiers and none matched.
		sp.Breakdown.IdentifierPresent = true
		weightSum += s.cfg.IdentifierWeight
	}

	if weightSum > 0 {
		sp.Score = weighted / weightSum
	}
	return sp
}

// nameSimilarity is a normalized Levenshtein score: 1 for identical clean
// names, 0 when every rune differs.
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	sim := 1 - float64(dist)/float64(maxLen)
	if sim < 0 {
		return 0
	}
	return sim
}

// spatialSimilarity decays linearly from 1 at zero distance to 0 at the
// configured radius and beyond.
func (s *Scorer) spatialSimilarity(a, b *record.NormalizedRecord) float64 {
	d := HaversineMeters(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	if d >= s.cfg.SpatialMaxRadiusMeters {
		return 0
	}
	return 1 - d/s.cfg.SpatialMaxRadiusMeters
}

func sharesIdentifier(a, b *record.NormalizedRecord) bool {
	if len(a.AuxIdentifiers) == 0 || len(b.AuxIdentifiers) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a.AuxIdentifiers))
	for _, id := range a.AuxIdentifiers {
		set[id] = struct{}{}
	}
	for _, id := range b.AuxIdentifiers {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
