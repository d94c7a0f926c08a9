package mailer

import (
	"fmt"

	"github.com/hirewire/hirewire-api/pkg/mailer/templates"
)

// EmailJob is the message shape published to the email queue. Template names
// map to files in the templates package.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

var subjects = map[string]string{
	"welcome":            "Welcome to HireWire",
	"reset_password":     "Reset your HireWire password",
	"application_status": "Update on your job application",
}

// Render resolves the job into a subject and HTML body.
func (j EmailJob) Render() (subject, html string, err error) {
	subject, ok := subjects[j.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", j.Template)
	}
	html, err = templates.Render(j.Template, j.Data)
	if err != nil {
		return "", "", err
	}
	return subject, html, nil
}
