package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skylinegeo/quote-service/internal/service"
)

// PDFGenerator renders the customer-facing quote document.
type PDFGenerator interface {
	Generate(n service.Notification) ([]byte, error)
}

// ExcelGenerator renders the internal breakdown workbook.
type ExcelGenerator interface {
	Generate(n service.Notification) ([]byte, error)
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	SalesInbox string
}

// Mailer sends two fire-and-forget messages per submission: a confirmation
// with a PDF quote to the contact, and a notification with an XLSX
// breakdown to the sales inbox. With no SMTP host configured it is a no-op.
type Mailer struct {
	cfg   SMTPConfig
	pdf   PDFGenerator
	excel ExcelGenerator
	log   zerolog.Logger

	sendFn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg SMTPConfig, pdf PDFGenerator, excel ExcelGenerator, log zerolog.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		pdf:    pdf,
		excel:  excel,
		log:    log,
		sendFn: smtp.SendMail,
	}
}

func (m *Mailer) Notify(ctx context.Context, n service.Notification) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		return nil
	}

	var errs []error
	if to := strings.TrimSpace(n.Submission.Contact.Email); to != "" {
		if err := m.sendCustomerQuote(to, n); err != nil {
			errs = append(errs, err)
		}
	}
	if to := strings.TrimSpace(m.cfg.SalesInbox); to != "" {
		if err := m.sendSalesNotification(to, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Mailer) sendCustomerQuote(to string, n service.Notification) error {
	subject := fmt.Sprintf("Your survey quote %s", n.Submission.Metadata.RequestID)
	body := customerBody(n)

	var attachment []byte
	if m.pdf != nil && !n.Quote.Manual {
		content, err := m.pdf.Generate(n)
		if err != nil {
			m.log.Error().Err(err).Msg("quote pdf generation failed, sending without attachment")
		} else {
			attachment = content
		}
	}

	msg := buildMessage(m.cfg.From, to, subject, body, attachment,
		fmt.Sprintf("quote-%s.pdf", n.Submission.Metadata.RequestID), "application/pdf")
	return m.send(to, msg)
}

func (m *Mailer) sendSalesNotification(to string, n service.Notification) error {
	subject := fmt.Sprintf("New quote submission %s", n.Submission.Metadata.RequestID)
	body := salesBody(n)

	var attachment []byte
	if m.excel != nil {
		content, err := m.excel.Generate(n)
		if err != nil {
			m.log.Error().Err(err).Msg("quote workbook generation failed, sending without attachment")
		} else {
			attachment = content
		}
	}

	msg := buildMessage(m.cfg.From, to, subject, body, attachment,
		fmt.Sprintf("quote-%s.xlsx", n.Submission.Metadata.RequestID),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return m.send(to, msg)
}

func (m *Mailer) send(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := m.sendFn(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}

func customerBody(n service.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", fallback(n.Submission.Contact.Name, "there"))
	fmt.Fprintf(&b, "We received your %s survey request (%.1f acres).\n\n",
		n.Submission.Service.Type, n.Submission.AOI.Acres)
	if n.Quote.Manual {
		b.WriteString("Your area of interest is large enough that our team will prepare a custom quote and follow up shortly.\n")
	} else {
		fmt.Fprintf(&b, "Estimated price: $%.2f\n", *n.Quote.Price)
		if n.Quote.Breakdown.MobilizationCharge > 0 {
			fmt.Fprintf(&b, "Includes mobilization: $%.2f (%.0f miles)\n",
				n.Quote.Breakdown.MobilizationCharge, n.Quote.Breakdown.MobilizationMiles)
		}
		b.WriteString("A detailed quote is attached.\n")
	}
	fmt.Fprintf(&b, "\nReference: %s\n", n.Submission.Metadata.RequestID)
	return b.String()
}

func salesBody(n service.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request %s\n", n.Submission.Metadata.RequestID)
	fmt.Fprintf(&b, "Contact: %s <%s> %s\n",
		n.Submission.Contact.Name, n.Submission.Contact.Email, n.Submission.Contact.Phone)
	fmt.Fprintf(&b, "Service: %s, %.1f acres\n", n.Submission.Service.Type, n.Submission.AOI.Acres)
	if n.Quote.Manual {
		b.WriteString("Outcome: MANUAL REVIEW (over auto-quote ceiling)\n")
	} else {
		fmt.Fprintf(&b, "Outcome: $%.2f\n", *n.Quote.Price)
	}
	fmt.Fprintf(&b, "Auto-quote eligible: %v\n", n.Flags.AutoQuoteEligible)
	if n.Flags.InServiceArea == nil {
		b.WriteString("Service area: unknown\n")
	} else {
		fmt.Fprintf(&b, "Service area: %v\n", *n.Flags.InServiceArea)
	}
	return b.String()
}

// buildMessage assembles a multipart/mixed MIME message with an optional
// base64 attachment. A nil attachment yields a plain-text message.
func buildMessage(from, to, subject, body string, attachment []byte, filename, contentType string) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if attachment == nil {
		buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		buf.WriteString(body)
		return buf.Bytes()
	}

	writer := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", writer.Boundary())

	textHeader := make(map[string][]string)
	textHeader["Content-Type"] = []string{"text/plain; charset=utf-8"}
	textPart, _ := writer.CreatePart(textHeader)
	textPart.Write([]byte(body))

	fileHeader := make(map[string][]string)
	fileHeader["Content-Type"] = []string{contentType}
	fileHeader["Content-Transfer-Encoding"] = []string{"base64"}
	fileHeader["Content-Disposition"] = []string{fmt.Sprintf("attachment; filename=%q", filename)}
	filePart, _ := writer.CreatePart(fileHeader)

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(attachment)))
	base64.StdEncoding.Encode(encoded, attachment)
	filePart.Write(encoded)

	writer.Close()
	return buf.Bytes()
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
