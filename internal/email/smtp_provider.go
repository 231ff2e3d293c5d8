package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider implements Provider over SMTP.
type SMTPProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer *TemplateRenderer
}

func NewSMTPProvider(config *SMTPConfig, renderer *TemplateRenderer) *SMTPProvider {
	return &SMTPProvider{
		config:   config,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		renderer: renderer,
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}
	if p.config.FromName != "" {
		m.SetHeader("From", m.FormatAddress(from, p.config.FromName))
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}

	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	return nil
}
