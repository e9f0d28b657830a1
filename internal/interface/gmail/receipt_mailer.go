package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"strings"

	"booking-service/internal/domain/entity"
	"booking-service/pkg/logger"
	"booking-service/templates"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// ErrInvalidAddress is returned when a sender or recipient is not a single mail address.
var ErrInvalidAddress = errors.New("invalid mail address")

// ReceiptMailer sends booking receipts through the Gmail API.
type ReceiptMailer struct {
	gmailService *gmail.Service
	sender       string
	logger       logger.Logger
}

// NewReceiptMailer creates a mailer authenticated with tokenSource.
func NewReceiptMailer(ctx context.Context, tokenSource oauth2.TokenSource, sender string, logger logger.Logger) (*ReceiptMailer, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &ReceiptMailer{
		gmailService: service,
		sender:       sender,
		logger:       logger,
	}, nil
}

// SendReceipt mails the confirmation to the guest.
func (m *ReceiptMailer) SendReceipt(ctx context.Context, reservation *entity.Reservation) error {
	if reservation.GuestEmail == "" {
		return nil
	}

	subject, body, err := templates.RenderBookingConfirmation(reservation)
	if err != nil {
		return err
	}

	raw, err := encodeMessage(m.sender, reservation.GuestEmail, subject, body)
	if err != nil {
		return fmt.Errorf("receipt for %s: %w", reservation.ID, err)
	}
	sent, err := m.gmailService.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send receipt for %s: %w", reservation.ID, err)
	}

	m.logger.Info("Receipt sent",
		"reservationID", reservation.ID,
		"messageID", sent.Id)
	return nil
}

// encodeMessage builds an RFC 2822 message and encodes it as the API's base64url raw field.
// Addresses are written from their parsed form and must not contain line breaks.
func encodeMessage(from, to, subject, body string) (string, error) {
	toAddr, err := headerAddress(to)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if from != "" {
		fromAddr, err := headerAddress(from)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "From: %s\r\n", fromAddr)
	}
	fmt.Fprintf(&b, "To: %s\r\n", toAddr)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

func headerAddress(value string) (string, error) {
	if strings.ContainsAny(value, "\r\n") {
		return "", fmt.Errorf("%w: line break in %q", ErrInvalidAddress, value)
	}
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return addr.String(), nil
}
