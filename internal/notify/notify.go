// Package notify sends alerts when a disaster post is approved.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/config"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

type Notifier interface {
	PostApproved(ctx context.Context, post *models.Post) error
}

// Nop discards every alert.
type Nop struct{}

func (Nop) PostApproved(context.Context, *models.Post) error { return nil }

// messageSender is the subset of the Twilio REST client used here.
type messageSender interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMS texts every configured recipient through Twilio.
type SMS struct {
	sender     messageSender
	from       string
	recipients []string
	log        *zap.Logger
}

func NewSMS(cfg config.Twilio, log *zap.Logger) *SMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &SMS{sender: client.Api, from: cfg.FromNumber, recipients: cfg.Recipients, log: log}
}

// New returns an SMS notifier when Twilio is configured, Nop otherwise.
func New(cfg config.Twilio, log *zap.Logger) Notifier {
	if !cfg.Enabled() {
		log.Info("approval alerts disabled: twilio not configured")
		return Nop{}
	}
	return NewSMS(cfg, log)
}

// PostApproved sends one message per recipient and reports how many failed.
func (s *SMS) PostApproved(ctx context.Context, post *models.Post) error {
	body := Message(post)

	failed := 0
	for _, to := range s.recipients {
		if err := ctx.Err(); err != nil {
			return err
		}

		params := &openapi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(s.from)
		params.SetBody(body)

		resp, err := s.sender.CreateMessage(params)
		if err != nil {
			failed++
			s.log.Warn("alert sms failed", zap.String("to", to), zap.String("post_id", post.ID), zap.Error(err))
			continue
		}
		if resp != nil && resp.Sid != nil {
			s.log.Debug("alert sms sent", zap.String("sid", *resp.Sid), zap.String("post_id", post.ID))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d alert messages failed", failed, len(s.recipients))
	}
	return nil
}

// Message renders the alert text for post.
func Message(post *models.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s - %s", post.Category, post.Title, post.Location)
	if post.DisasterDate != nil {
		fmt.Fprintf(&b, " (%s)", post.DisasterDate.UTC().Format("Jan 2, 2006"))
	}
	return b.String()
}
