package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gerrors "github.com/go-faster/errors"

	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

// Notifier delivers the advisory status-change email. Implementations are
// best-effort; callers decide whether a failure matters.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, name, email string, fired bool) error
}

type resendMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// ResendNotifier sends transactional email through the Resend HTTP API.
// Sending is disabled entirely when no API key is configured.
type ResendNotifier struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

func NewResendNotifier(opts *configuration.NotificationOptions) *ResendNotifier {
	return &ResendNotifier{
		apiURL: opts.APIURL,
		apiKey: opts.APIKey,
		from:   opts.From,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *ResendNotifier) NotifyStatusChange(ctx context.Context, name, email string, fired bool) error {
	if n.apiKey == "" {
		return nil
	}

	msg := resendMessage{
		From: n.from,
		To:   []string{email},
	}
	if fired {
		msg.Subject = "Notice of termination"
		msg.HTML = fmt.Sprintf(
			"<p>Dear %s,</p><p>We regret to inform you that your employment has been terminated, effective immediately.</p><p>OWOW HR</p>",
			name,
		)
	} else {
		msg.Subject = "Welcome back!"
		msg.HTML = fmt.Sprintf(
			"<p>Dear %s,</p><p>Great news: you have been reinstated. Welcome back to the team!</p><p>OWOW HR</p>",
			name,
		)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return gerrors.Wrap(err, "failed to encode notification")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewReader(body))
	if err != nil {
		return gerrors.Wrap(err, "failed to build notification request")
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return gerrors.Wrap(err, "failed to send notification")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return gerrors.Errorf("notification relay returned status %d", resp.StatusCode)
	}
	return nil
}
