package email

import "log/slog"

// ConsoleProvider logs messages instead of sending them. Used in
// development and tests.
type ConsoleProvider struct{}

func (p *ConsoleProvider) Send(email *Email) error {
	slog.Info("email (console)", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *ConsoleProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	slog.Info("email (console)", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (p *ConsoleProvider) Validate() error { return nil }
