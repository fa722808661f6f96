package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendEarningsDigest(ctx context.Context, to, toName string, report *domain.EarningsReport) error {
	subject := fmt.Sprintf("Earnings digest %s to %s",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02"))

	plainText, htmlContent := renderDigest(report)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Info("Earnings digest sent", "to", to, "days", len(report.Days))
	return nil
}

func renderDigest(report *domain.EarningsReport) (string, string) {
	var plain, html strings.Builder

	fmt.Fprintf(&plain, "Earnings summary\n\n")
	html.WriteString("<html><body><h2>Earnings summary</h2><table border=\"1\" cellpadding=\"4\">")
	html.WriteString("<tr><th>Date</th><th>Rentals</th><th>Total</th></tr>")

	for _, day := range report.Days {
		fmt.Fprintf(&plain, "%s  %d rentals  %s\n", day.Date, len(day.Rentals), day.Total.StringFixed(2))
		fmt.Fprintf(&html, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>",
			day.Date, len(day.Rentals), day.Total.StringFixed(2))
	}

	fmt.Fprintf(&plain, "\nGrand total: %s\n", report.GrandTotal.StringFixed(2))
	fmt.Fprintf(&html, "</table><p><b>Grand total: %s</b></p></body></html>", report.GrandTotal.StringFixed(2))

	return plain.String(), html.String()
}
