package service

import (
	"bytes"
	"context"
	"culturefit_backend/internal/config"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MailService sends transactional mail through a Postmark-style HTTP
// API. Delivery is always best effort: callers log failures and keep
// going, they never roll back on a lost email.
type MailService struct {
	Cfg    *config.EmailConfig
	Client *http.Client
}

func NewMailService(cfg *config.Config) *MailService {
	return &MailService{
		Cfg:    &cfg.Email,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type mailPayload struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HTMLBody string `json:"HtmlBody"`
}

func (s *MailService) send(ctx context.Context, to, subject, htmlBody string) error {
	if s.Cfg.Endpoint == "" {
		// Mail delivery not configured; treated as a no-op sink.
		return nil
	}

	payload := mailPayload{
		From:     fmt.Sprintf("noreply@%s", s.Cfg.Domain),
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", s.Cfg.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *MailService) SendInvitation(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s?token=%s", s.Cfg.AssessmentURL, token)
	body := fmt.Sprintf(
		"<p>You have been invited to complete the culture fit assessment.</p><p><a href=%q>Begin Assessment</a></p>",
		link,
	)
	return s.send(ctx, email, "Your Culture Fit Assessment Invitation", body)
}

func (s *MailService) SendReminder(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s?token=%s", s.Cfg.AssessmentURL, token)
	body := fmt.Sprintf(
		"<p>This is a reminder to complete your culture fit assessment.</p><p><a href=%q>Begin Assessment</a></p>",
		link,
	)
	return s.send(ctx, email, "Your Culture Fit Assessment Invitation (Resend)", body)
}

func (s *MailService) SendAdminWelcome(ctx context.Context, email, tempPassword string) error {
	body := fmt.Sprintf(
		"<p>You have been added as an administrator.</p><p>Your temporary password is <code>%s</code>. Please change it after your first login.</p>",
		tempPassword,
	)
	return s.send(ctx, email, "Admin Account Invitation", body)
}
