package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RelayTransport delivers messages through an HTTP mail relay (SendGrid-style
// JSON API authorized with a bearer token).
type RelayTransport struct {
	client *resty.Client
	from   string
}

// NewRelayTransport creates a relay transport for the given endpoint.
func NewRelayTransport(url, apiKey, from string) *RelayTransport {
	client := resty.New().
		SetBaseURL(url).
		SetTimeout(15 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &RelayTransport{client: client, from: from}
}

type relayPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	Urgent  bool   `json:"urgent,omitempty"`
}

// Send implements Transport.
func (t *RelayTransport) Send(ctx context.Context, msg Message) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(relayPayload{
			From:    t.from,
			To:      msg.To,
			Subject: msg.Subject,
			Text:    msg.Body,
			Urgent:  msg.Urgent,
		}).
		Post("")
	if err != nil {
		return fmt.Errorf("calling mail relay: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail relay returned %s: %s", resp.Status(), resp.String())
	}
	return nil
}
