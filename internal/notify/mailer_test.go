package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylinegeo/quote-service/internal/service"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  []byte
}

type stubGenerator struct {
	data []byte
	err  error
}

func (s stubGenerator) Generate(service.Notification) ([]byte, error) {
	return s.data, s.err
}

func newTestMailer(cfg SMTPConfig, pdf PDFGenerator, excel ExcelGenerator) (*Mailer, *[]sentMail) {
	var sent []sentMail
	m := NewMailer(cfg, pdf, excel, zerolog.Nop())
	m.sendFn = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: msg})
		return nil
	}
	return m, &sent
}

func smtpConfig() SMTPConfig {
	return SMTPConfig{
		Host:       "smtp.example.com",
		Port:       587,
		From:       "quotes@example.com",
		SalesInbox: "sales@example.com",
	}
}

func TestMailerSendsCustomerAndSalesMail(t *testing.T) {
	m, sent := newTestMailer(smtpConfig(),
		stubGenerator{data: []byte("%PDF-fake")},
		stubGenerator{data: []byte("PK-fake")},
	)

	err := m.Notify(context.Background(), sampleNotification())
	require.NoError(t, err)
	require.Len(t, *sent, 2)

	customer := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", customer.addr)
	assert.Equal(t, []string{"dana@example.com"}, customer.to)
	assert.Contains(t, string(customer.msg), "Subject: Your survey quote Q-1-deadbeef")
	assert.Contains(t, string(customer.msg), "application/pdf")

	sales := (*sent)[1]
	assert.Equal(t, []string{"sales@example.com"}, sales.to)
	assert.Contains(t, string(sales.msg), "Subject: New quote submission Q-1-deadbeef")
	assert.Contains(t, string(sales.msg), "spreadsheetml")
}

func TestMailerManualQuoteSkipsPDF(t *testing.T) {
	n := sampleNotification()
	n.Quote.Manual = true
	n.Quote.Price = nil

	m, sent := newTestMailer(smtpConfig(),
		stubGenerator{err: errors.New("should not be called")},
		nil,
	)
	require.NoError(t, m.Notify(context.Background(), n))

	require.Len(t, *sent, 2)
	customer := string((*sent)[0].msg)
	assert.NotContains(t, customer, "application/pdf")
	assert.Contains(t, customer, "custom quote")
}

func TestMailerGeneratorFailureStillSends(t *testing.T) {
	m, sent := newTestMailer(smtpConfig(),
		stubGenerator{err: errors.New("render failed")},
		stubGenerator{err: errors.New("render failed")},
	)
	require.NoError(t, m.Notify(context.Background(), sampleNotification()))
	require.Len(t, *sent, 2)
	for _, mail := range *sent {
		assert.NotContains(t, string(mail.msg), "attachment;")
	}
}

func TestMailerUnconfiguredIsNoop(t *testing.T) {
	m, sent := newTestMailer(SMTPConfig{}, nil, nil)
	require.NoError(t, m.Notify(context.Background(), sampleNotification()))
	assert.Empty(t, *sent)
}

func TestMailerSkipsEmptyRecipients(t *testing.T) {
	cfg := smtpConfig()
	cfg.SalesInbox = ""
	m, sent := newTestMailer(cfg, nil, nil)

	n := sampleNotification()
	n.Submission.Contact.Email = "  "
	require.NoError(t, m.Notify(context.Background(), n))
	assert.Empty(t, *sent)
}

func TestMailerSendFailureSurfaced(t *testing.T) {
	m := NewMailer(smtpConfig(), nil, nil, zerolog.Nop())
	m.sendFn = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.Notify(context.Background(), sampleNotification())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))
}
