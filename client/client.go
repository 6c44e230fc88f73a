// Package client implements the agent-to-agent caller: it opens a streaming
// message send against a remote agent, consumes the event stream, and
// reduces it to one final text reply.
//
// The caller never fails outward. A stream that ends without a final reply
// yields a fixed placeholder; transport-level failures degrade to a textual
// error embedding the description, so downstream unavailability produces a
// reply, not a fault.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/logging"
)

// NoResponse is returned when the stream ends without a final reply event.
const NoResponse = "No response received"

// Options configure the agent client.
type Options struct {
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client performs streaming calls to remote agents. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	logger     logging.Logger
}

// New constructs a Client with optional overrides. The default HTTP client
// carries no timeout; latency bounds are the transport's concern.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: &http.Client{},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{httpClient: opts.HTTPClient, logger: opts.Logger}
}

// sendParams is the body of a streaming message send.
type sendParams struct {
	Message a2a.Message `json:"message"`
}

// Call sends text to the agent at agentURL and consumes its event stream
// until the first status update that is both final and carries a reply
// message, returning that message's newline-joined text. The call is
// contextually independent: a fresh message and context id pair is generated
// so the destination never observes the caller's own conversation.
func (c *Client) Call(ctx context.Context, agentURL, text string) string {
	reply, err := c.call(ctx, agentURL, text)
	if err != nil {
		c.logger.Error("agent call failed", "url", agentURL, "error", err.Error())
		return fmt.Sprintf("Error: Failed to contact agent - %s", err.Error())
	}
	return reply
}

func (c *Client) call(ctx context.Context, agentURL, text string) (string, error) {
	msg := a2a.NewUserMessage(uuid.NewString(), text)

	body, err := json.Marshal(sendParams{Message: msg})
	if err != nil {
		return "", fmt.Errorf("encode message: %w", err)
	}

	endpoint := strings.TrimRight(agentURL, "/") + "/message/stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("agent responded with status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		event, err := a2a.UnmarshalEvent([]byte(data))
		if err != nil {
			c.logger.Warn("skipping undecodable event", "url", agentURL, "error", err.Error())
			continue
		}
		su, ok := event.(*a2a.StatusUpdateEvent)
		if !ok || !su.Final || su.Status.Message == nil {
			continue
		}
		// First final event with a reply wins; stop consuming without
		// waiting for stream closure.
		if reply := su.Status.Message.Text("\n"); reply != "" {
			return reply, nil
		}
		return NoResponse, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return NoResponse, nil
}
