package probe

import (
	"context"
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// Prober answers whether a network address is currently reachable.
// Implementations must be bounded in time and must never fail upward:
// any transport-level error is reported as unreachable.
type Prober interface {
	Probe(ctx context.Context, address string) bool
}

// Func adapts a plain function to the Prober interface.
type Func func(ctx context.Context, address string) bool

// Probe calls f.
func (f Func) Probe(ctx context.Context, address string) bool {
	return f(ctx, address)
}

// TCPProber probes addresses with bounded TCP dial attempts.
// Timeouts, refusals, and DNS failures are all treated uniformly as
// unreachable.
type TCPProber struct {
	logger *zerolog.Logger
	config Config
}

// NewTCPProber creates a TCPProber with the given configuration.
func NewTCPProber(cfg Config, logger *zerolog.Logger) *TCPProber {
	return &TCPProber{config: cfg, logger: logger}
}

// Probe dials the address up to the configured attempt count, each attempt
// bounded by the configured timeout. Returns true on the first successful
// connection.
func (p *TCPProber) Probe(ctx context.Context, address string) bool {
	target := DialAddress(address, p.config.GetPort())
	dialer := net.Dialer{Timeout: p.config.GetTimeout()}

	for attempt := 1; attempt <= p.config.GetAttempts(); attempt++ {
		conn, err := dialer.DialContext(ctx, "tcp", target)
		if err == nil {
			_ = conn.Close()
			return true
		}
		if p.logger != nil {
			p.logger.Debug().
				Str("address", target).
				Int("attempt", attempt).
				Err(err).
				Msg("probe attempt failed")
		}
		if ctx.Err() != nil {
			return false
		}
	}
	return false
}

// Memo wraps a Prober and memoizes results by address for the lifetime of
// one run. Reconciliation consults the same probe result set the selector
// saw, so one address is never dialed twice within a run. A Memo must not
// outlive a run: results are never cached across runs.
type Memo struct {
	prober Prober
	seen   map[string]bool
	mu     sync.Mutex
}

// NewMemo creates a per-run memoizing wrapper around prober.
func NewMemo(prober Prober) *Memo {
	return &Memo{prober: prober, seen: make(map[string]bool)}
}

// Probe returns the memoized result for address, probing once on first use.
func (m *Memo) Probe(ctx context.Context, address string) bool {
	m.mu.Lock()
	reachable, ok := m.seen[address]
	m.mu.Unlock()
	if ok {
		return reachable
	}

	reachable = m.prober.Probe(ctx, address)

	m.mu.Lock()
	m.seen[address] = reachable
	m.mu.Unlock()
	return reachable
}
