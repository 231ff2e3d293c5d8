package email

// SMTPConfig holds the SMTP server configuration.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
