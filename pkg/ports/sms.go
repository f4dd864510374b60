package ports

import "context"

// SMSGateway sends a text message to a subscriber. The engine invokes it on
// terminal renders under the always-send-sms policy; delivery failures are
// logged and dropped, never retried and never failing the turn.
type SMSGateway interface {
	Send(ctx context.Context, message, recipient, sender string) error
}
