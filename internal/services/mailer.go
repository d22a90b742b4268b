package services

import "log"

// Mailer is the outbound-mail collaborator. Only the forgot-password flow
// uses it; delivery is an external concern.
type Mailer interface {
	Send(to, subject, body string)
}

// LogMailer writes the message to the application log instead of sending it.
// The default until a real delivery backend is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) {
	log.Printf("[mail] to=%s subject=%q body=%q", to, subject, body)
}
