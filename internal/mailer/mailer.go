package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

const (
	sendAttempts = 3
	retryDelay   = 500 * time.Millisecond
)

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

// Send renders the subject, plainBody and htmlBody blocks of templateFile
// and delivers the result, retrying a few times on failure.
func (m *SMTPMailer) Send(recipient, templateFile string, data any) error {
	msg, err := m.newMessage(recipient, templateFile, data)
	if err != nil {
		return err
	}

	for i := 1; i <= sendAttempts; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}

		time.Sleep(retryDelay)
	}

	return fmt.Errorf("failed to send %s after %d attempts: %w", templateFile, sendAttempts, err)
}

func (m *SMTPMailer) newMessage(recipient, templateFile string, data any) (*mail.Message, error) {
	rendered, err := render(templateFile, data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", rendered.subject)
	msg.SetBody("text/plain", rendered.plainBody)
	msg.AddAlternative("text/html", rendered.htmlBody)

	return msg, nil
}

type renderedEmail struct {
	subject   string
	plainBody string
	htmlBody  string
}

func render(templateFile string, data any) (*renderedEmail, error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	var result renderedEmail

	blocks := []struct {
		name string
		dst  *string
	}{
		{"subject", &result.subject},
		{"plainBody", &result.plainBody},
		{"htmlBody", &result.htmlBody},
	}

	for _, block := range blocks {
		buf := new(bytes.Buffer)

		err = tmpl.ExecuteTemplate(buf, block.name, data)
		if err != nil {
			return nil, err
		}

		*block.dst = buf.String()
	}

	return &result, nil
}
