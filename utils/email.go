package utils

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailSender is satisfied by *sendgrid.Client.
type MailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// RunReporter emails the run log after every scrape.
type RunReporter struct {
	Client MailSender
	From   string
	To     string
}

func NewRunReporter(apiKey, from, to string) *RunReporter {
	return &RunReporter{
		Client: sendgrid.NewSendClient(apiKey),
		From:   from,
		To:     to,
	}
}

// Report sends the run log. runErr decides the subject line.
func (r *RunReporter) Report(ctx context.Context, runID, runLog string, runErr error) error {
	subject := fmt.Sprintf("Shoe scrape %s succeeded", runID)
	if runErr != nil {
		subject = fmt.Sprintf("Shoe scrape %s FAILED: %v", runID, runErr)
	}

	from := mail.NewEmail("Shoe Price Tracker", r.From)
	to := mail.NewEmail("", r.To)
	message := mail.NewSingleEmail(from, subject, to, runLog, "<pre>"+html.EscapeString(runLog)+"</pre>")

	response, err := r.Client.SendWithContext(ctx, message)
	if err != nil {
		log.Printf("Error sending run report to %s: %v", r.To, err)
		return err
	}

	if response.StatusCode >= 400 {
		log.Printf("SendGrid API Error: Status Code %d, Body: %s", response.StatusCode, response.Body)
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	log.Printf("Run report sent to %s. Status Code: %d", r.To, response.StatusCode)
	return nil
}
