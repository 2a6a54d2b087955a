package nginx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// reloadTimeout bounds the reload command; nginx reloads are near-instant
// and a hung command must not stall the run.
const reloadTimeout = 30 * time.Second

// Reloader invokes the proxy process reload command.
type Reloader struct {
	logger *zerolog.Logger
	argv   []string
}

// NewReloader creates a Reloader running the given argv.
func NewReloader(argv []string, logger *zerolog.Logger) *Reloader {
	return &Reloader{argv: argv, logger: logger}
}

// Reload runs the configured reload command once. Output is captured into
// the returned error on failure.
func (r *Reloader) Reload(ctx context.Context) error {
	if len(r.argv) == 0 {
		return fmt.Errorf("reload: empty command")
	}

	ctx, cancel := context.WithTimeout(ctx, reloadTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("reload %q: %w: %s", strings.Join(r.argv, " "), err, strings.TrimSpace(string(out)))
	}

	if r.logger != nil {
		r.logger.Info().Str("cmd", strings.Join(r.argv, " ")).Msg("proxy reloaded")
	}
	return nil
}
