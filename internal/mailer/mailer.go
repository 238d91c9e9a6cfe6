package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Mailer is the transactional email surface the auth service depends on.
// Both sends are fire-and-forget: failures are logged by the caller and
// never fail the triggering request.
type Mailer interface {
	SendVerification(ctx context.Context, to, token string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// Client posts messages to a Resend-style transactional email API.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, from string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (c *Client) SendVerification(ctx context.Context, to, token string) error {
	return c.send(ctx, message{
		From:    c.from,
		To:      []string{to},
		Subject: "Confirm your AnimeHub account",
		Text: fmt.Sprintf(
			"Welcome to AnimeHub!\n\nConfirm your email address with this code: %s\n\nThe code expires in 24 hours.",
			token),
	})
}

func (c *Client) SendPasswordReset(ctx context.Context, to, token string) error {
	return c.send(ctx, message{
		From:    c.from,
		To:      []string{to},
		Subject: "Reset your AnimeHub password",
		Text: fmt.Sprintf(
			"A password reset was requested for your account.\n\nReset code: %s\n\nThe code expires in 1 hour. If you did not request this, ignore this email.",
			token),
	})
}

func (c *Client) send(ctx context.Context, msg message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/emails", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider returned HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// SendAsync runs a send in its own goroutine with a detached timeout and
// logs failures. Used where the spec requires the triggering request to
// succeed even when the email never leaves.
func SendAsync(log *slog.Logger, send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			log.Warn("email send failed", "error", err)
		}
	}()
}
