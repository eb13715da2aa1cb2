package utils

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers email through the SendGrid v3 API
type SendGridSender struct {
	client   *sendgrid.Client
	fromName string
	from     string
}

func NewSendGridSender(apiKey, fromName, from string) *SendGridSender {
	return newSendGridSender(apiKey, "", fromName, from)
}

// newSendGridSender targets host instead of the public API when host is set
func newSendGridSender(apiKey, host, fromName, from string) *SendGridSender {
	request := sendgrid.GetRequest(apiKey, "/v3/mail/send", host)
	request.Method = rest.Post

	return &SendGridSender{
		client:   &sendgrid.Client{Request: request},
		fromName: fromName,
		from:     from,
	}
}

func (s *SendGridSender) Send(ctx context.Context, to string, msg Message) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		msg.Subject,
		mail.NewEmail("", to),
		msg.Body,
		getEmailTemplate(msg.Subject, msg.Body),
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SMTPSender delivers email over plain SMTP with PLAIN auth
type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string

	// sendMail is swapped in tests
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host string, port int, user, password, fromName, from string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		FromName: fromName,
		sendMail: smtp.SendMail,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", s.FromName, s.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		getEmailTemplate(msg.Subject, msg.Body),
	}

	auth := smtp.PlainAuth("", s.User, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	send := s.sendMail
	if send == nil {
		send = smtp.SendMail
	}
	if err := send(addr, auth, s.From, []string{to}, []byte(strings.Join(headers, "\r\n"))); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

// getEmailTemplate wraps a plain-text body in the HTML layout shared by all outgoing mail
func getEmailTemplate(title string, body string) string {
	paragraphs := strings.Split(strings.TrimSpace(body), "\n\n")
	var content strings.Builder
	for _, p := range paragraphs {
		content.WriteString("<p>")
		content.WriteString(html.EscapeString(strings.TrimSpace(p)))
		content.WriteString("</p>\n")
	}

	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #B71C1C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #212121; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>SMART AMBULANCE SYSTEM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message. Please do not reply.
			</div>
		</div>
	</body>
	</html>
	`, html.EscapeString(title), content.String())
}
