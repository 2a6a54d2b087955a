// Package controller sequences one upswitch evaluation: probe the candidate
// paths, detect status edges against the persisted run state, reconcile
// nginx rule targets, and dispatch operator notifications.
package controller

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/omarluq/upswitch/internal/nginx"
	"github.com/omarluq/upswitch/internal/notify"
	"github.com/omarluq/upswitch/internal/probe"
	"github.com/omarluq/upswitch/internal/state"
)

// Controller runs one idempotent evaluation per invocation. It exclusively
// owns the RunState between Load and Save.
type Controller struct {
	candidates    []probe.Candidate
	prober        probe.Prober
	scanner       *nginx.Scanner
	rewriter      *nginx.Rewriter
	reloader      *nginx.Reloader
	store         *state.Store
	dispatcher    *notify.Dispatcher
	downThreshold int
	logger        *zerolog.Logger
}

// Params collects the collaborators of a Controller.
type Params struct {
	Candidates    []probe.Candidate
	Prober        probe.Prober
	Scanner       *nginx.Scanner
	Rewriter      *nginx.Rewriter
	Reloader      *nginx.Reloader
	Store         *state.Store
	Dispatcher    *notify.Dispatcher
	DownThreshold int
	Logger        *zerolog.Logger
}

// New creates a Controller.
func New(p Params) *Controller {
	return &Controller{
		candidates:    p.Candidates,
		prober:        p.Prober,
		scanner:       p.Scanner,
		rewriter:      p.Rewriter,
		reloader:      p.Reloader,
		store:         p.Store,
		dispatcher:    p.Dispatcher,
		downThreshold: p.DownThreshold,
		logger:        p.Logger,
	}
}

// Run executes one evaluation. Collaborator failures after startup are
// logged, never fatal: the run always proceeds to persisting state.
func (c *Controller) Run(ctx context.Context) error {
	st := c.store.Load()

	// One memo per run: reconciliation sees the exact probe results the
	// selector produced, and no address is dialed twice.
	memo := probe.NewMemo(c.prober)
	selector := probe.NewSelector(memo, c.logger)

	active, up := selector.Select(ctx, c.candidates)
	if !up {
		c.handleAllDown(ctx, &st)
		c.persist(st)
		return nil
	}

	c.logger.Info().
		Str("candidate", active.Name).
		Str("address", active.Address).
		Int("priority", active.Priority).
		Msg("best reachable candidate")

	if st.MarkUp() {
		c.dispatcher.Dispatch(ctx, notify.NewRecoveryEvent(active))
	}

	c.reconcile(ctx, memo, active)
	c.persist(st)
	return nil
}

// handleAllDown applies the down-episode counter logic: notify while the
// counter is within the threshold, log-only beyond it.
func (c *Controller) handleAllDown(ctx context.Context, st *state.RunState) {
	shouldNotify := st.MarkDown(c.downThreshold)
	count := st.ConsecutiveDownNotifications

	if shouldNotify {
		c.logger.Warn().Int("count", count).Msg("all candidates unreachable")
		c.dispatcher.Dispatch(ctx, notify.NewAllDownEvent(c.candidates, count))
		return
	}
	c.logger.Warn().
		Int("count", count).
		Int("threshold", c.downThreshold).
		Msg("all candidates unreachable, notification suppressed")
}

// reconcile repoints every stale or preemptable rule at the active
// candidate, writes changed files, reloads nginx once when anything
// changed, and emits one switch notification naming every replaced target.
func (c *Controller) reconcile(ctx context.Context, prober probe.Prober, active probe.Candidate) {
	files, err := c.scanner.Scan()
	if err != nil {
		c.logger.Error().Err(err).Msg("scan failed, skipping reconciliation")
		return
	}

	var replaced []string
	for _, file := range files {
		for i := range file.Rules {
			rule := file.Rules[i]
			if !c.needsRewrite(ctx, prober, rule, active) {
				continue
			}
			if !file.SetTarget(i, active.Address) {
				continue
			}
			c.logger.Info().
				Str("file", file.Path).
				Str("from", rule.Address).
				Str("to", active.Address).
				Msg("rule target rewritten")
			replaced = append(replaced, rule.Address)
		}
	}

	written := false
	for _, file := range files {
		if !file.Changed() {
			continue
		}
		if err := c.rewriter.Write(file); err != nil {
			c.logger.Error().Str("file", file.Path).Err(err).Msg("write failed")
			continue
		}
		written = true
	}

	if written {
		if err := c.reloader.Reload(ctx); err != nil {
			c.logger.Error().Err(err).Msg("reload failed")
		}
		from := lo.Uniq(replaced)
		sort.Strings(from)
		c.dispatcher.Dispatch(ctx, notify.NewSwitchEvent(from, active))
	}
}

// needsRewrite reports whether a rule should be repointed: its current
// target is unreachable, or a strictly higher-priority candidate than the
// one it targets is reachable (preemptive failback).
func (c *Controller) needsRewrite(ctx context.Context, prober probe.Prober, rule nginx.Rule, active probe.Candidate) bool {
	if ruleTargets(rule, active.Address) {
		return false
	}
	if !prober.Probe(ctx, rule.Address) {
		return true
	}

	current, isCandidate := lo.Find(c.candidates, func(cand probe.Candidate) bool {
		return ruleTargets(rule, cand.Address)
	})
	// A reachable non-candidate target is left alone.
	return isCandidate && active.Priority < current.Priority
}

// ruleTargets reports whether the rule already points at the given candidate
// address. An address without an explicit port matches on host alone; one
// with a port must match the rule's port too.
func ruleTargets(rule nginx.Rule, address string) bool {
	host, port := probe.HostPort(address)
	if rule.Address != host {
		return false
	}
	return port == "" || rule.Port == ":"+port
}

// persist writes the updated run state; failure is logged, not fatal.
func (c *Controller) persist(st state.RunState) {
	if err := c.store.Save(st); err != nil {
		c.logger.Error().Str("path", c.store.Path()).Err(err).Msg("state save failed")
	}
}
