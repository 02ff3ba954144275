package domain

import "context"

// InviteEmailData carries the fields rendered into an invitation notification.
type InviteEmailData struct {
	Email      string
	OwnerName  string
	EventTitle string
	Message    string
}

// EmailService sends transactional emails. Implementations must be safe to
// call best-effort: callers ignore failures for non-critical notifications.
type EmailService interface {
	SendInviteNotification(ctx context.Context, data *InviteEmailData) error
}

// Mailer is the low-level outbound email port implemented by providers.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// EmailTemplateRenderer renders a named template into subject, html, and text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}
