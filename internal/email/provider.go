package email

// Provider sends outbound email. All calls from services are
// fire-and-forget: failures are logged by the caller, never propagated to
// the request that triggered them.
type Provider interface {
	// Send sends a plain message.
	Send(email *Email) error

	// SendTemplate renders a named template and sends it.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error
}
