package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// sendTimeout bounds one channel delivery attempt.
const sendTimeout = 15 * time.Second

// SendResult is the per-channel outcome of a dispatch.
type SendResult struct {
	Channel string
	Err     error
}

// Dispatcher fans events out to every configured channel. Channels are
// attempted independently: a failing channel is logged and the rest still
// run.
type Dispatcher struct {
	channels []Channel
	logger   *zerolog.Logger
}

// NewDispatcher creates a Dispatcher over the given channels.
func NewDispatcher(channels []Channel, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{channels: channels, logger: logger}
}

// Dispatch sends the event to every channel and returns one result per
// channel, in channel order.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) []SendResult {
	results := make([]SendResult, 0, len(d.channels))
	for _, ch := range d.channels {
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err := ch.Send(sendCtx, event.Subject, event.Body)
		cancel()

		if d.logger != nil {
			if err != nil {
				d.logger.Error().
					Str("channel", ch.Name()).
					Str("kind", string(event.Kind)).
					Err(err).
					Msg("notification send failed")
			} else {
				d.logger.Info().
					Str("channel", ch.Name()).
					Str("kind", string(event.Kind)).
					Msg("notification sent")
			}
		}
		results = append(results, SendResult{Channel: ch.Name(), Err: err})
	}
	return results
}

// FailedChannels returns the names of channels whose send failed.
func FailedChannels(results []SendResult) []string {
	failed := lo.Filter(results, func(r SendResult, _ int) bool { return r.Err != nil })
	return lo.Map(failed, func(r SendResult, _ int) string { return r.Channel })
}
