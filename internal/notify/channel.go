package notify

import "context"

// Channel delivers a notification over one transport. Implementations must
// be safe to call once per event per run and must bound their own I/O.
type Channel interface {
	// Name returns the channel variant name for logging.
	Name() string

	// Send delivers the message. A nil return means the channel accepted it.
	Send(ctx context.Context, subject, body string) error
}
