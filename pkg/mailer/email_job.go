package mailer

// Template names understood by the email worker.
const (
	TemplateResetPassword   = "reset_password"
	TemplatePasswordChanged = "password_changed"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// When Template is set the worker renders subject and body from it; otherwise
// Subject and Text are sent as-is.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
