// Package services holds outbound integrations. Currently that is the
// comment notification mail sent to the blog operator through the Resend
// API.
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Dubemernest23/akuko/config"
	"github.com/Dubemernest23/akuko/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Notifier mails the operator when a comment lands in the moderation queue.
// Disabled (a logged no-op) when RESEND_API_KEY or NOTIFY_EMAIL is unset.
type Notifier struct {
	apiKey    string
	fromEmail string
	toEmail   string
	client    *http.Client
}

func NewNotifier(cfg map[string]string) *Notifier {
	return &Notifier{
		apiKey:    config.GetString(cfg, config.KeyResendAPIKey, ""),
		fromEmail: config.GetString(cfg, "RESEND_FROM_EMAIL", "Akuko Blog <noreply@akuko.blog>"),
		toEmail:   config.GetString(cfg, config.KeyNotifyEmail, ""),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether notifications are configured.
func (n *Notifier) Enabled() bool {
	return n.apiKey != "" && n.toEmail != ""
}

// NotifyNewComment sends the moderation mail for a freshly submitted
// comment. Callers treat failures as best-effort; the comment is already
// stored.
func (n *Notifier) NotifyNewComment(comment *models.Comment, postTitle string) error {
	if !n.Enabled() {
		log.Debug().Msg("Comment notifications disabled; skipping mail")
		return nil
	}

	subject := fmt.Sprintf("New comment awaiting moderation on %q", postTitle)
	body := fmt.Sprintf(
		"<p><strong>%s</strong> commented on <strong>%s</strong>:</p><blockquote>%s</blockquote>",
		html.EscapeString(comment.AuthorName),
		html.EscapeString(postTitle),
		html.EscapeString(comment.Content),
	)

	payload := ResendEmailRequest{
		From:    n.fromEmail,
		To:      []string{n.toEmail},
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Sent comment notification mail")
	}

	return nil
}
