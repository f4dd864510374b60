package http

import (
	"context"
	"fmt"
)

// SMSMaxContent is the per-message character budget of the delivery
// channel. Longer texts are split into a chain of messages.
const SMSMaxContent = 139

// smsContinued marks every non-final chunk of a split message.
const smsContinued = "..."

// SMSGateway delivers texts through an HTTP endpoint speaking the same
// form-POST protocol as the carrier. It satisfies ports.SMSGateway.
type SMSGateway struct {
	endpoint string
	client   *Client
}

// NewSMSGateway builds a gateway posting to endpoint via client.
func NewSMSGateway(endpoint string, client *Client) *SMSGateway {
	return &SMSGateway{endpoint: endpoint, client: client}
}

// Send chunks the message to the channel budget and posts each piece in
// order. The first failed chunk aborts the rest.
func (g *SMSGateway) Send(ctx context.Context, message, recipient, sender string) error {
	for i, chunk := range ChunkMessage(message, SMSMaxContent) {
		params := map[string]string{
			"message":   chunk,
			"recipient": recipient,
			"sender":    sender,
		}
		if _, err := g.client.Post(ctx, params, g.endpoint); err != nil {
			return fmt.Errorf("sms chunk %d: %w", i+1, err)
		}
	}
	return nil
}

// ChunkMessage splits message into pieces of at most max bytes. Every
// non-final piece ends with a truncation suffix so the subscriber knows
// more is coming; a message within budget comes back untouched.
func ChunkMessage(message string, max int) []string {
	if len(message) <= max {
		return []string{message}
	}

	size := max - len(smsContinued)
	chunks := make([]string, 0, len(message)/size+1)
	for len(message) > size {
		chunks = append(chunks, message[:size]+smsContinued)
		message = message[size:]
	}
	return append(chunks, message)
}
