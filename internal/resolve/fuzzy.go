package resolve

import (
	"sort"

	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
)

// MatchState is the terminal state of one fuzzy-match attempt. A later
// override can move any terminal state to StateOverridden.
type MatchState string

const (
	StateAutoMatched      MatchState = "auto_matched"
	StateNeedsReview      MatchState = "needs_review"
	StateUnmatchedNoBlock MatchState = "unmatched_no_block"
	StateOverridden       MatchState = "overridden"
)

// MatchPolicy holds the gated-matching thresholds. Exposed as
// configuration rather than hardcoded; the defaults implement strict
// gated matching.
type MatchPolicy struct {
	// AcceptThreshold is the absolute minimum final score for auto-accept.
	AcceptThreshold float64
	// MinMargin is the minimum gap between the best and second-best
	// final scores. Prevents accepting a merely-good match over a
	// near-tie competitor.
	MinMargin float64
	// TopN is how many candidates to retain for review.
	TopN int
}

// DefaultMatchPolicy returns the strict gated-matching defaults.
func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{AcceptThreshold: 0.92, MinMargin: 0.04, TopN: 5}
}

// PoolEntry is one reference candidate: a canonical player reduced to
// its comparison keys.
type PoolEntry struct {
	CanonicalID string
	Name        string
	NameKey     string
	DateKey     string
	Position    string
}

// PoolFromRegistry flattens a registry into the fuzzy-matching pool.
func PoolFromRegistry(reg *Registry) []PoolEntry {
	pool := make([]PoolEntry, 0, len(reg.Players))
	for _, id := range reg.CanonicalIDs() {
		p := reg.Players[id]
		pool = append(pool, PoolEntry{
			CanonicalID: p.CanonicalID,
			Name:        p.DisplayName,
			NameKey:     NameKey(p.DisplayName),
			DateKey:     DateKey(p.BirthDate),
			Position:    p.Position,
		})
	}
	return pool
}

// Candidate is an ephemeral scored pairing produced during matching.
type Candidate struct {
	CanonicalID string  `csv:"canonical_id" json:"canonical_id"`
	Name        string  `csv:"name" json:"name"`
	Similarity  float64 `csv:"similarity" json:"similarity"`
	Bonus       float64 `csv:"bonus" json:"bonus"`
	FinalScore  float64 `csv:"final_score" json:"final_score"`
}

// MatchResult is the terminal outcome for one target record.
type MatchResult struct {
	Record     model.SourceRecord
	State      MatchState
	Best       *Candidate  // set when auto-matched
	Candidates []Candidate // top-N, retained for review
}

// MatchStats counts terminal states across one matcher run.
type MatchStats struct {
	AutoMatched int `json:"auto_matched" yaml:"auto_matched"`
	NeedsReview int `json:"needs_review" yaml:"needs_review"`
	NoBlock     int `json:"unmatched_no_block" yaml:"unmatched_no_block"`
}

// Matcher performs date-blocked gated fuzzy matching against a fixed
// reference pool. Records without a DateKey are not eligible: date-less
// fuzzy matching is judged too unsafe, so they are reported unmatched.
type Matcher struct {
	policy MatchPolicy
	blocks map[string][]PoolEntry
}

// NewMatcher partitions the pool into blocks keyed by exact DateKey.
// Pool entries without a DateKey are unreachable by design.
func NewMatcher(pool []PoolEntry, policy MatchPolicy) *Matcher {
	if policy.TopN <= 0 {
		policy.TopN = DefaultMatchPolicy().TopN
	}
	blocks := make(map[string][]PoolEntry)
	for _, e := range pool {
		if e.DateKey == "" {
			continue
		}
		blocks[e.DateKey] = append(blocks[e.DateKey], e)
	}
	return &Matcher{policy: policy, blocks: blocks}
}

// Match scores one record against its date block and applies the
// double acceptance gate.
func (m *Matcher) Match(rec model.SourceRecord) MatchResult {
	res := MatchResult{Record: rec}

	dateKey := DateKey(rec.BirthDate)
	if dateKey == "" {
		res.State = StateUnmatchedNoBlock
		return res
	}
	block := m.blocks[dateKey]
	if len(block) == 0 {
		res.State = StateUnmatchedNoBlock
		return res
	}

	targetKey := NameKey(rec.FullName)
	candidates := make([]Candidate, 0, len(block))
	for _, e := range block {
		sim, bonus, final := Score(targetKey, e.NameKey,
			true, // block membership implies DateKey equality
			positionsEqual(rec.Position, e.Position))
		candidates = append(candidates, Candidate{
			CanonicalID: e.CanonicalID,
			Name:        e.Name,
			Similarity:  sim,
			Bonus:       bonus,
			FinalScore:  final,
		})
	}
	rankCandidates(candidates)

	if len(candidates) > m.policy.TopN {
		res.Candidates = candidates[:m.policy.TopN]
	} else {
		res.Candidates = candidates
	}

	best := candidates[0]
	margin := best.FinalScore
	if len(candidates) > 1 {
		margin = best.FinalScore - candidates[1].FinalScore
	}

	if best.FinalScore >= m.policy.AcceptThreshold && margin >= m.policy.MinMargin {
		res.State = StateAutoMatched
		res.Best = &best
		return res
	}

	res.State = StateNeedsReview
	return res
}

// MatchAll runs Match over every record and tallies terminal states.
func (m *Matcher) MatchAll(records []model.SourceRecord) ([]MatchResult, MatchStats) {
	results := make([]MatchResult, 0, len(records))
	var stats MatchStats

	for _, rec := range records {
		res := m.Match(rec)
		switch res.State {
		case StateAutoMatched:
			stats.AutoMatched++
		case StateNeedsReview:
			stats.NeedsReview++
		case StateUnmatchedNoBlock:
			stats.NoBlock++
		}
		results = append(results, res)
	}

	zap.L().Info("fuzzy matching complete",
		zap.Int("targets", len(records)),
		zap.Int("auto_matched", stats.AutoMatched),
		zap.Int("needs_review", stats.NeedsReview),
		zap.Int("unmatched_no_block", stats.NoBlock))

	return results, stats
}

// rankCandidates sorts by final score descending, canonical ID ascending
// on ties so results are deterministic.
func rankCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].FinalScore != cands[j].FinalScore {
			return cands[i].FinalScore > cands[j].FinalScore
		}
		return cands[i].CanonicalID < cands[j].CanonicalID
	})
}

func positionsEqual(a, b string) bool {
	return a != "" && NameKey(a) == NameKey(b)
}
