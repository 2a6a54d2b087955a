// Package notify fans status-change events out to the configured operator
// channels. Channels are polymorphic variants (telegram, mail); one
// channel's failure never blocks the others.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/omarluq/upswitch/internal/probe"
)

// Kind identifies what an event reports.
type Kind string

// Event kinds.
const (
	KindSwitch   Kind = "switch"
	KindRecovery Kind = "recovery"
	KindAllDown  Kind = "all_down"
)

// Event is a status-change message, constructed and immediately dispatched.
type Event struct {
	Kind    Kind
	Subject string
	Body    string
}

// NewAllDownEvent reports that no candidate is reachable. episode is the
// consecutive-down count of the current down-episode.
func NewAllDownEvent(candidates []probe.Candidate, episode int) Event {
	names := lo.Map(candidates, func(c probe.Candidate, _ int) string {
		return fmt.Sprintf("%s (%s)", c.Name, c.Address)
	})
	body := fmt.Sprintf("No upstream path is reachable (check #%d).\n\nProbed:\n", episode)
	for _, n := range names {
		body += "  - " + n + "\n"
	}
	body += "\n" + timestamp()
	return Event{
		Kind:    KindAllDown,
		Subject: "all upstream paths down",
		Body:    body,
	}
}

// NewRecoveryEvent reports the end of a down-episode.
func NewRecoveryEvent(active probe.Candidate) Event {
	return Event{
		Kind:    KindRecovery,
		Subject: "upstream path recovered",
		Body: fmt.Sprintf("Connectivity restored. Active path: %s (%s).\n\n%s",
			active.Name, active.Address, timestamp()),
	}
}

// NewSwitchEvent reports that proxy rules were repointed to a new candidate.
// from lists every replaced target address of the run.
func NewSwitchEvent(from []string, to probe.Candidate) Event {
	return Event{
		Kind:    KindSwitch,
		Subject: fmt.Sprintf("switched upstream to %s", to.Name),
		Body: fmt.Sprintf("Proxy target changed: %s -> %s (%s, priority %d).\n\n%s",
			strings.Join(from, ", "), to.Address, to.Name, to.Priority, timestamp()),
	}
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
