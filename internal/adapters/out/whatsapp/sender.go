// Package whatsapp delivers customer notifications through a WhatsApp
// Business API gateway.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfilment/internal/core/ports"
)

const requestTimeout = 10 * time.Second

// Sender implements ports.MessageSender over the gateway's HTTP API.
//
// Response mapping: 2xx is success, 4xx is a permanent rejection (bad
// recipient, template refused) reported as ports.ErrMessageRejected, and
// anything else is a transient failure the dispatcher will retry.
type Sender struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSender creates a sender for the given gateway endpoint.
func NewSender(baseURL string, apiKey string) *Sender {
	return &Sender{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// Send pushes one message to the gateway.
func (s *Sender) Send(ctx context.Context, phone string, text string) error {
	payload, err := json.Marshal(sendRequest{To: phone, Body: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: gateway returned %d", ports.ErrMessageRejected, resp.StatusCode)
	default:
		return fmt.Errorf("whatsapp gateway returned %d", resp.StatusCode)
	}
}
