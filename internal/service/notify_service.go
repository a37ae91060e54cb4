package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type Mailer interface {
	SendEmail(ctx context.Context, toEmail, toName, subject, plainText, html string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, toNumber, body string) error
}

type SendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       *zap.Logger
}

func NewSendGridMailer(apiKey, fromEmail, fromName string, log *zap.Logger) *SendGridMailer {
	if fromName == "" {
		fromName = "Scheduler"
	}
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

func (m *SendGridMailer) SendEmail(ctx context.Context, toEmail, toName, subject, plainText, html string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, html)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmail, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	m.log.Info("email sent", zap.String("to", toEmail), zap.String("subject", subject), zap.Int("status", response.StatusCode))
	return nil
}

type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
	log        *zap.Logger
}

func NewTwilioSender(accountSID, authToken, fromNumber string, log *zap.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return &TwilioSender{client: client, fromNumber: fromNumber, log: log}
}

// SendSMS ignores ctx; the Twilio client has no context-aware call.
func (t *TwilioSender) SendSMS(_ context.Context, toNumber, body string) error {
	if !strings.HasPrefix(toNumber, "+") {
		t.log.Warn("destination number is not E.164, SMS may fail", zap.String("to", toNumber))
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s: %w", toNumber, err)
	}
	if resp != nil && resp.Sid != nil {
		t.log.Info("sms sent", zap.String("to", toNumber), zap.String("sid", *resp.Sid))
	}
	return nil
}
