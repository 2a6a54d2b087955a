package probe

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Selector picks the best reachable candidate from a fixed-priority list.
type Selector struct {
	prober Prober
	logger *zerolog.Logger
}

// NewSelector creates a Selector backed by prober.
func NewSelector(prober Prober, logger *zerolog.Logger) *Selector {
	return &Selector{prober: prober, logger: logger}
}

// Select returns the reachable candidate with the numerically lowest
// priority, or false if no candidate is reachable. Candidates are evaluated
// strictly in ascending priority order and evaluation short-circuits at the
// first reachable one, so the result is independent of probe latency.
func (s *Selector) Select(ctx context.Context, candidates []Candidate) (Candidate, bool) {
	for _, c := range sortByPriority(candidates) {
		if s.prober.Probe(ctx, c.Address) {
			if s.logger != nil {
				s.logger.Debug().
					Str("candidate", c.Name).
					Str("address", c.Address).
					Int("priority", c.Priority).
					Msg("selected reachable candidate")
			}
			return c, true
		}
	}
	return Candidate{}, false
}

// sortByPriority returns candidates sorted by priority ascending (most
// preferred first). Makes a copy to avoid mutating the input slice.
func sortByPriority(candidates []Candidate) []Candidate {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		return a.Priority - b.Priority
	})
	return sorted
}

// ProbeAll probes every candidate concurrently with at most limit in-flight
// probes and returns one Result per candidate in input order. Used for
// operator reports where the full reachability picture is wanted; candidate
// selection itself goes through Select.
func ProbeAll(ctx context.Context, prober Prober, candidates []Candidate, limit int) []Result {
	results := make([]Result, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, c := range candidates {
		g.Go(func() error {
			results[i] = Result{Candidate: c, Reachable: prober.Probe(ctx, c.Address)}
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	return results
}
