package email

// Config holds email transport configuration.
//
// SenderEmail establishes the From identity for all outbound mail. The SMTP
// block and the Postmark tokens are alternatives: main picks Postmark when a
// server token is present, SMTP when a host is, and the dev sender otherwise.
type Config struct {
	SenderEmail string `env:"SENDER_EMAIL"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	DevOutputDir string `env:"EMAIL_DEV_DIR" envDefault:"./emails"`
}
