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
	return &emailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *emailService) send(to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

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

func (s *emailService) SendNewOrderNotice(ctx context.Context, adminEmail string, orderID int64, amountCents int64) error {
	subject := fmt.Sprintf("New rental order #%d", orderID)
	body := fmt.Sprintf("A new rental order #%d for $%d.%02d is awaiting payment confirmation.",
		orderID, amountCents/100, amountCents%100)
	return s.send(adminEmail, subject, body)
}

func (s *emailService) SendRentalActiveNotice(ctx context.Context, email string, orderID int64, hours int) error {
	subject := fmt.Sprintf("Rental #%d is active", orderID)
	body := fmt.Sprintf("Your rented account has been handed off. The rental runs for %d hours from now.", hours)
	return s.send(email, subject, body)
}

func (s *emailService) SendExpiryWarning(ctx context.Context, email string, orderID int64, minutesLeft int) error {
	subject := fmt.Sprintf("Rental #%d expires soon", orderID)
	body := fmt.Sprintf("Your rental ends in about %d minutes. Save your progress and log out in time.", minutesLeft)
	return s.send(email, subject, body)
}

func (s *emailService) SendOrderRejectedNotice(ctx context.Context, email string, orderID int64) error {
	subject := fmt.Sprintf("Order #%d cancelled", orderID)
	body := "Your rental order was cancelled. If a pending payment was attached it has been voided."
	return s.send(email, subject, body)
}

func (s *emailService) SendOrderCompletedNotice(ctx context.Context, email string, orderID int64) error {
	subject := fmt.Sprintf("Rental #%d finished", orderID)
	body := "Your rental has ended. Thanks for renting with us - you can now leave a review."
	return s.send(email, subject, body)
}

func (s *emailService) SendDepositResolvedNotice(ctx context.Context, email string, depositID int64, approved bool) error {
	if approved {
		return s.send(email, fmt.Sprintf("Deposit #%d approved", depositID),
			"Your deposit was approved and your balance has been credited.")
	}
	return s.send(email, fmt.Sprintf("Deposit #%d rejected", depositID),
		"Your deposit could not be verified and was rejected. Your balance is unchanged.")
}
