// Package notify pushes best-effort alert messages to the LINE Notify
// webhook. Delivery is fire-and-forget: one attempt, boolean outcome,
// no retry.
package notify

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"admit-planner-server/internal/config"
)

// LineClient sends messages through the LINE Notify API.
type LineClient struct {
	endpoint string
	token    string
	client   *http.Client
	log      *zap.Logger
}

// NewLineClient builds a client from the notification configuration.
func NewLineClient(cfg config.NotifyConfig, log *zap.Logger) *LineClient {
	return &LineClient{
		endpoint: cfg.LineEndpoint,
		token:    cfg.LineToken,
		client:   &http.Client{Timeout: cfg.Timeout},
		log:      log,
	}
}

// Configured reports whether a token has been set.
func (c *LineClient) Configured() bool {
	return c.token != ""
}

// Send delivers one message. Returns true only on an HTTP 200 from the
// webhook; every failure mode (network, auth, non-200) is logged and
// reported as false, never escalated.
func (c *LineClient) Send(message string) bool {
	form := url.Values{"message": {message}}
	req, err := http.NewRequest(http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		c.log.Warn("building notify request failed", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("notify delivery failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("notify rejected", zap.Int("status", resp.StatusCode))
		return false
	}
	return true
}
