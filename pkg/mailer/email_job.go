package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either the rendered Subject/Text/HTML are set, or Template and Data name
// an embedded template the worker renders.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "reset_password"
	Data     map[string]any `json:"data,omitempty"`
}

func (j EmailJob) Message() Message {
	return Message{To: j.To, Subject: j.Subject, Text: j.Text, HTML: j.HTML}
}
