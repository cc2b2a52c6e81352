package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
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

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, toEmail, toName, batchID string, totalCents int64) error {
	subject := "Your rental order is confirmed"
	body := fmt.Sprintf("Hello %s,\n\nWe received your rental order (reference %s).\nTotal charged: $%.2f.\n\nYour vendors will confirm pickup details shortly.", toName, batchID, float64(totalCents)/100)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, toEmail, toName, invoiceNumber string, amountCents int64) error {
	subject := fmt.Sprintf("Payment received for %s", invoiceNumber)
	body := fmt.Sprintf("Hello %s,\n\nWe recorded a payment of $%.2f against invoice %s.\n\nThank you.", toName, float64(amountCents)/100, invoiceNumber)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendPaymentReminder(ctx context.Context, toEmail, toName, invoiceNumber string, amountDueCents int64) error {
	subject := fmt.Sprintf("Invoice %s is overdue", invoiceNumber)
	body := fmt.Sprintf("Hello %s,\n\nInvoice %s has an outstanding balance of $%.2f.\nPlease arrange payment at your earliest convenience.", toName, invoiceNumber, float64(amountDueCents)/100)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is %s.\n\nIt expires shortly; do not share it with anyone.", code)
	return s.send(toEmail, "", subject, body)
}
