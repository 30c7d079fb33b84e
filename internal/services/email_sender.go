package services

// EmailSender delivers the password-reset token out of band. In
// production this is the only channel the token should travel through.
type EmailSender interface {
	Send(to string, subject string, body string) error
}
