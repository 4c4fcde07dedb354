package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cabinet_avocat_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate loads an email template pair (.html/.txt) from
// templates/emails and executes it with the given data
func loadTemplate(templateName string, data interface{}) (html string, text string, err error) {
	basePath := "templates/emails"

	loadAndExec := func(ext string) (string, error) {
		path := filepath.Join(basePath, templateName+ext)
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template %s: %v", path, err)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %v", path, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to execute template %s: %v", path, err)
		}
		return buf.String(), nil
	}

	htmlContent, err := loadAndExec(".html")
	if err != nil {
		return "", "", err
	}

	textContent, err := loadAndExec(".txt")
	if err != nil {
		return "", "", err
	}

	return htmlContent, textContent, nil
}

// SendEmail sends an email using the Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email asynchronously using a goroutine so handlers
// do not block on the SMTP round trip
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// PasswordResetEmailData contains data for the password reset email template
type PasswordResetEmailData struct {
	Name      string
	Code      string
	ExpiresIn string
}

// BuildPasswordResetEmail creates the one-time-code password reset email
func BuildPasswordResetEmail(toEmail, name, code string) *Email {
	data := PasswordResetEmailData{
		Name:      name,
		Code:      code,
		ExpiresIn: "15 minutes",
	}

	htmlBody, textBody, err := loadTemplate("password_reset", data)
	if err != nil {
		log.Printf("Error loading password_reset email template: %v", err)
		textBody = fmt.Sprintf("Hello %s,\n\nYour password reset code is %s. It expires in 15 minutes.\n", name, code)
	}

	return &Email{
		To:       []string{toEmail},
		Subject:  "Password reset code",
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// WelcomeEmailData contains data for the welcome email template
type WelcomeEmailData struct {
	Name string
}

// BuildWelcomeEmail creates a welcome email for newly registered lawyers
func BuildWelcomeEmail(toEmail, name string) *Email {
	htmlBody, textBody, err := loadTemplate("welcome", WelcomeEmailData{Name: name})
	if err != nil {
		log.Printf("Error loading welcome email template: %v", err)
		textBody = fmt.Sprintf("Welcome %s! Your account is ready.\n", name)
	}

	return &Email{
		To:       []string{toEmail},
		Subject:  "Welcome",
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// BuildMessageReplyEmail creates the admin's reply to a contact-form
// message. The body arrives already sanitized; the reply itself is not
// persisted.
func BuildMessageReplyEmail(toEmail, name, subject, htmlBody string) *Email {
	if subject == "" {
		subject = "Re: your message"
	}

	return &Email{
		To:       []string{toEmail},
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: fmt.Sprintf("Hello %s,\n\nYou have received a reply to your message.\n", name),
	}
}
