package nginx

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// SetTarget repoints the rule at index i at target, preserving the directive
// prefix and every other byte of the file. target is a host, optionally with
// an embedded port: a bare host replaces only the host span and keeps the
// rule's own port, a host:port replaces both spans. Bare IPv6 hosts are
// bracketed on write. Returns false when the rule already targets target.
func (f *ConfigFile) SetTarget(i int, target string) bool {
	rule := &f.Rules[i]

	host, port := splitTarget(target)
	newPort := rule.Port
	if port != "" {
		newPort = ":" + port
	}
	if rule.Address == host && rule.Port == newPort {
		return false
	}

	written := host
	if strings.Contains(host, ":") {
		written = "[" + host + "]"
	}

	// The port span, when replaced, directly follows the host span.
	spliceEnd := rule.hostEnd
	replacement := written
	if port != "" {
		spliceEnd += len(rule.Port)
		replacement += newPort
	}

	var buf bytes.Buffer
	buf.Grow(len(f.Content) + len(replacement))
	buf.Write(f.Content[:rule.hostStart])
	buf.WriteString(replacement)
	buf.Write(f.Content[spliceEnd:])
	f.Content = buf.Bytes()

	delta := len(replacement) - (spliceEnd - rule.hostStart)
	rule.Address = host
	rule.Port = newPort
	rule.hostEnd = rule.hostStart + len(written)
	// Later rules shift by the size difference of the spliced span.
	for j := i + 1; j < len(f.Rules); j++ {
		f.Rules[j].hostStart += delta
		f.Rules[j].hostEnd += delta
	}

	f.changed = true
	return true
}

// splitTarget separates an optional port from a rewrite target. A bare IPv6
// literal, bracketed or not, is a host with no port.
func splitTarget(target string) (host, port string) {
	if h, p, err := net.SplitHostPort(target); err == nil && p != "" {
		return h, p
	}
	return strings.Trim(target, "[]"), ""
}

// Rewriter writes changed ConfigFiles back to disk.
type Rewriter struct {
	logger *zerolog.Logger
	backup bool
}

// NewRewriter creates a Rewriter. When backup is true the pre-rewrite
// content is saved to <path>.bak before the file is overwritten.
func NewRewriter(backup bool, logger *zerolog.Logger) *Rewriter {
	return &Rewriter{backup: backup, logger: logger}
}

// Write persists a changed file, keeping its original permissions.
// Unchanged files are a no-op.
func (w *Rewriter) Write(f *ConfigFile) error {
	if !f.changed {
		return nil
	}

	if w.backup {
		if err := os.WriteFile(f.Path+backupSuffix, f.original, f.Mode); err != nil {
			// A failed backup must not block the failover itself.
			if w.logger != nil {
				w.logger.Warn().Str("file", f.Path).Err(err).Msg("write backup failed")
			}
		}
	}

	if err := os.WriteFile(f.Path, f.Content, f.Mode); err != nil {
		return fmt.Errorf("write site file %s: %w", f.Path, err)
	}

	if w.logger != nil {
		w.logger.Info().Str("file", f.Path).Msg("site file updated")
	}
	return nil
}
