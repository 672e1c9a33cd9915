package services

import (
	"fmt"
	"strings"

	"hotel-pms-backend/models"
	"hotel-pms-backend/utils"
)

// Notification kinds sent to guests on booking state changes.
const (
	NotifyBookingReceived  = "booking-received"
	NotifyBookingConfirmed = "booking-confirmed"
	NotifyBookingRejected  = "booking-rejected"
)

// NotificationContext carries the booking facts the templates render.
type NotificationContext struct {
	Booking     models.Booking
	RoomType    string
	Downpayment float64
	Reason      string
}

// Notifier delivers guest notifications. Delivery is best-effort: booking
// transitions commit first and never roll back on a send failure.
type Notifier interface {
	Notify(recipient string, kind string, ctx NotificationContext) error
}

// EmailNotifier renders the booking templates and hands them to the SMTP
// sender (which falls back to log output when SMTP is not configured).
type EmailNotifier struct {
	FromName string
}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{FromName: utils.EnvOrDefault("SMTP_FROM_NAME", "Hotel Management Team")}
}

func (n *EmailNotifier) Notify(recipient string, kind string, ctx NotificationContext) error {
	subject, body, err := n.render(kind, ctx)
	if err != nil {
		return err
	}
	return utils.SendEmail(recipient, subject, body)
}

func (n *EmailNotifier) render(kind string, ctx NotificationContext) (string, string, error) {
	b := ctx.Booking
	guests := b.Adults + b.Children + b.ExtraChildren

	switch kind {
	case NotifyBookingReceived:
		subject := fmt.Sprintf("Booking Received – Pending Verification (ID: %s)", b.ID)
		body := fmt.Sprintf(
			"Dear %s,\n\n"+
				"Thank you for choosing our hotel.\n\n"+
				"We have received your booking request. Your reservation is currently\n"+
				"PENDING VERIFICATION while we review your submitted payment.\n\n"+
				"Booking Details:\n"+
				"- Booking ID: %s\n"+
				"- Room Type: %s\n"+
				"- Check-in Date: %s\n"+
				"- Check-out Date: %s\n"+
				"- Total Guests: %d\n"+
				"- Total Price: %.2f\n"+
				"- Downpayment Submitted: %.2f\n\n"+
				"Our team will verify your payment within 24 hours.\n"+
				"Once approved, you will receive a confirmation email.\n\n"+
				"Best regards,\n%s",
			b.GuestName, b.ID, ctx.RoomType,
			b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
			guests, b.TotalPrice, ctx.Downpayment, n.FromName,
		)
		return subject, body, nil

	case NotifyBookingConfirmed:
		subject := fmt.Sprintf("Booking Confirmed: %s", b.ID)
		body := fmt.Sprintf(
			"Dear %s,\n\n"+
				"We are pleased to inform you that your booking (ID: %s) has been confirmed.\n\n"+
				"Booking Details:\n"+
				"- Room Type: %s\n"+
				"- Check-in: %s\n"+
				"- Check-out: %s\n"+
				"- Total Guests: %d\n"+
				"- Total Price: %.2f\n\n"+
				"If you have any questions or need to make changes, please contact us.\n\n"+
				"Thank you for choosing our hotel!\n\n"+
				"Best regards,\n%s",
			b.GuestName, b.ID, ctx.RoomType,
			b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
			guests, b.TotalPrice, n.FromName,
		)
		return subject, body, nil

	case NotifyBookingRejected:
		reason := strings.TrimSpace(ctx.Reason)
		if reason == "" {
			reason = "Your booking was rejected."
		}
		subject := fmt.Sprintf("Booking %s Rejected", b.ID)
		body := fmt.Sprintf("Hello %s,\n\n%s\n\nThank you.", b.GuestName, reason)
		return subject, body, nil
	}

	return "", "", fmt.Errorf("unknown notification kind %q", kind)
}
