package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/fieldserve/backoffice/internal/config"
)

// Client sends transactional mail over SMTP. It is the single outbound-mail
// collaborator: reset codes and contact form notifications both go through it.
type Client struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewClient(conf *config.Config) *Client {
	return &Client{
		host:     conf.EMAIL_HOST,
		port:     conf.EMAIL_PORT,
		username: conf.EMAIL_USER,
		password: conf.EMAIL_PASS,
		from:     conf.EMAIL_FROM,
	}
}

func (c *Client) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if c.host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	var message bytes.Buffer
	message.WriteString(fmt.Sprintf("From: %s\r\n", c.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", to))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	message.WriteString("\r\n")
	message.WriteString(body)

	var auth smtp.Auth
	if c.username != "" {
		auth = smtp.PlainAuth("", c.username, c.password, c.host)
	}

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	if err := smtp.SendMail(addr, auth, c.from, []string{to}, message.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("email sent", "to", to, "subject", subject)
	return nil
}

var resetOTPTemplate = template.Must(template.New("reset_otp").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Password Reset Code</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Password Reset</h2>
    <p>We received a request to reset the password for your account.</p>
    <p>Your one-time code is:</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px; text-align: center; background-color: #f4f4f4; padding: 12px; border-radius: 4px;">{{.Code}}</p>
    <p>The code expires in 10 minutes. If you did not request a reset, you can ignore this email.</p>
    <p style="margin-top: 20px; font-size: 12px; color: #777;">This is an automated message, please do not reply.</p>
</body>
</html>
`))

// SendPasswordResetOTP delivers a one-time reset code
func (c *Client) SendPasswordResetOTP(ctx context.Context, to, code string) error {
	var body bytes.Buffer
	if err := resetOTPTemplate.Execute(&body, struct{ Code string }{Code: code}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return c.send(ctx, to, "Your password reset code", body.String())
}

// ContactForm is the payload rendered into the contact notification email
type ContactForm struct {
	Service       string
	Description   string
	PreferredDate string
	PreferredTime string
	Name          string
	Phone         string
	Email         string
	Address       string
	City          string
	State         string
	Zip           string
	AttachmentURL string
}

var contactTemplate = template.Must(template.New("contact").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Request</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>New Contact Request</h2>
    <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 6px; font-weight: bold;">Service</td><td style="padding: 6px;">{{.Service}}</td></tr>
        <tr><td style="padding: 6px; font-weight: bold;">Description</td><td style="padding: 6px;">{{.Description}}</td></tr>
        <tr><td style="padding: 6px; font-weight: bold;">Preferred Date</td><td style="padding: 6px;">{{.PreferredDate}} {{.PreferredTime}}</td></tr>
        <tr><td style="padding: 6px; font-weight: bold;">Name</td><td style="padding: 6px;">{{.Name}}</td></tr>
        <tr><td style="padding: 6px; font-weight: bold;">Phone</td><td style="padding: 6px;">{{.Phone}}</td></tr>
        <tr><td style="padding: 6px; font-weight: bold;">Email</td><td style="padding: 6px;">{{.Email}}</td></tr>
        <tr><td style="padding: 6px; font-weight: bold;">Address</td><td style="padding: 6px;">{{.Address}}, {{.City}}, {{.State}} {{.Zip}}</td></tr>
        {{if .AttachmentURL}}<tr><td style="padding: 6px; font-weight: bold;">Attachment</td><td style="padding: 6px;"><a href="{{.AttachmentURL}}">{{.AttachmentURL}}</a></td></tr>{{end}}
    </table>
</body>
</html>
`))

// SendContactForm forwards a contact submission to the office inbox
func (c *Client) SendContactForm(ctx context.Context, to string, form *ContactForm) error {
	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, form); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("New contact request from %s", form.Name)
	return c.send(ctx, to, subject, body.String())
}
