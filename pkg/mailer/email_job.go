package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the signup welcome email for a new clinician account.
func WelcomeJob(to, fullName string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to MediScribe",
		Text: "Hi " + fullName + ",\n\n" +
			"Your MediScribe account is ready. Sign in to manage your patient " +
			"roster and clinical documents.\n\n" +
			"— The MediScribe team",
	}
}
