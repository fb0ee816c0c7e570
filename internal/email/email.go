package email

import (
	"fmt"
	"net/smtp"

	"confportal-backend/internal/config"
)

// EmailSender delivers portal notifications. Callers treat delivery as
// fire-and-forget: a failed send is logged at the call site and never fails
// the lifecycle operation that triggered it.
type EmailSender struct {
	config *config.Config
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{config: cfg}
}

// SendReviewAssignment notifies a reviewer that a paper was assigned to them.
func (s *EmailSender) SendReviewAssignment(toEmail, paperTitle string) error {
	body := fmt.Sprintf(`
		<html>
			<body>
				<h2>New review assignment</h2>
				<p>The paper <b>%s</b> has been assigned to you for review.</p>
				<p>Please log in to the conference portal to submit your evaluation.</p>
			</body>
		</html>
	`, paperTitle)
	return s.send(toEmail, "Subject: New review assignment\n", body)
}

// SendDecisionNotice notifies an author that a decision was recorded on
// their paper.
func (s *EmailSender) SendDecisionNotice(toEmail, paperTitle, status string) error {
	body := fmt.Sprintf(`
		<html>
			<body>
				<h2>Decision recorded</h2>
				<p>A decision has been recorded for your paper <b>%s</b>: %s.</p>
				<p>Log in to the conference portal for the full review.</p>
			</body>
		</html>
	`, paperTitle, status)
	return s.send(toEmail, "Subject: Paper decision recorded\n", body)
}

func (s *EmailSender) send(toEmail, subject, body string) error {
	// If SMTP credentials are not set, fallback to logging (or return error)
	if s.config.SMTP.Email == "" || s.config.SMTP.Password == "" {
		fmt.Printf("SMTP credentials not set. Mocking email to %s\n", toEmail)
		return nil
	}

	from := s.config.SMTP.Email
	password := s.config.SMTP.Password
	host := s.config.SMTP.Host
	port := s.config.SMTP.Port
	address := host + ":" + port

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := []byte(subject + mime + body)

	auth := smtp.PlainAuth("", from, password, host)

	if err := smtp.SendMail(address, auth, from, []string{toEmail}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
