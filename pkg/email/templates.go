package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/securewave/securewave_backend/pkg/lead"
)

const defaultTeamName = "The Securewave Team"

// TemplateData carries the values every notification template needs besides
// the submitted payload.
type TemplateData struct {
	TeamName        string
	OperatorMailbox string
	// NormalizedPhone is the E.164 form of the submitted phone, if it parsed.
	NormalizedPhone string
}

func (d TemplateData) team() string {
	if strings.TrimSpace(d.TeamName) == "" {
		return defaultTeamName
	}
	return d.TeamName
}

// BuildSubscriptionThankYou creates the message sent to someone who filled in
// the full subscription form.
func BuildSubscriptionThankYou(p lead.Payload, d TemplateData) Message {
	textBody := fmt.Sprintf("Dear %s,\n\nThank you for subscribing to our %s services!\n\nSincerely,\n%s",
		p.Name, p.Service, d.team())

	return Message{
		To:       []string{p.Email},
		Subject:  "Thank You for Subscribing!",
		TextBody: textBody,
		HTMLBody: wrapHTML(fmt.Sprintf(`<h2 style="color: #2563eb;">Dear %s,</h2>
    <p>Thank you for subscribing to our <strong>%s</strong> services!</p>`,
			html.EscapeString(p.Name), html.EscapeString(p.Service)), d.team()),
	}
}

// BuildSubscriptionAlert creates the operator notification for a full
// subscription. All submitted fields are included verbatim.
func BuildSubscriptionAlert(p lead.Payload, d TemplateData) Message {
	var b strings.Builder
	b.WriteString("New subscription request:\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\nService: %s", p.Name, p.Email, p.Phone, p.Service)
	writeNormalizedPhone(&b, d)

	return Message{
		To:       []string{d.OperatorMailbox},
		ReplyTo:  p.Email,
		Subject:  "New Subscription Request",
		TextBody: b.String(),
	}
}

// BuildConsultationThankYou creates the message sent to someone who requested
// a consultation.
func BuildConsultationThankYou(p lead.Payload, d TemplateData) Message {
	textBody := fmt.Sprintf(`Dear %s,

Thank you for requesting a consultation with us. A member of our team will be in touch shortly.

Sincerely,
%s`, p.Name, d.team())

	return Message{
		To:       []string{p.Email},
		Subject:  "Thank You for Your Consultation Request",
		TextBody: textBody,
		HTMLBody: wrapHTML(fmt.Sprintf(`<h2 style="color: #2563eb;">Dear %s,</h2>
    <p>Thank you for requesting a consultation with us. A member of our team will be in touch shortly.</p>`,
			html.EscapeString(p.Name)), d.team()),
	}
}

// BuildConsultationAlert creates the operator notification for a
// consultation request.
func BuildConsultationAlert(p lead.Payload, d TemplateData) Message {
	var b strings.Builder
	b.WriteString("New consultation request:\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\nCompany: %s\nMessage: %s",
		p.Name, p.Email, p.Phone, p.Company, p.Message)
	writeNormalizedPhone(&b, d)

	return Message{
		To:       []string{d.OperatorMailbox},
		ReplyTo:  p.Email,
		Subject:  "New Consultation Request",
		TextBody: b.String(),
	}
}

// BuildServiceThankYou creates the message sent after an email-only
// subscription to updates for one offering.
func BuildServiceThankYou(p lead.Payload, d TemplateData) Message {
	textBody := fmt.Sprintf(`Hi,

You're now subscribed to updates for %s. We'll let you know as soon as there is news.

Sincerely,
%s`, p.Service, d.team())

	return Message{
		To:       []string{p.Email},
		Subject:  fmt.Sprintf("You're subscribed to %s", p.Service),
		TextBody: textBody,
		HTMLBody: wrapHTML(fmt.Sprintf(`<h2 style="color: #2563eb;">Hi,</h2>
    <p>You're now subscribed to updates for <strong>%s</strong>. We'll let you know as soon as there is news.</p>`,
			html.EscapeString(p.Service)), d.team()),
	}
}

// BuildServiceAlert creates the operator notification for an email-only
// subscription.
func BuildServiceAlert(p lead.Payload, d TemplateData) Message {
	return Message{
		To:       []string{d.OperatorMailbox},
		ReplyTo:  p.Email,
		Subject:  "New Service Subscription",
		TextBody: fmt.Sprintf("New service subscription:\nEmail: %s\nService: %s", p.Email, p.Service),
	}
}

// BuildTestMessage creates a message used to verify transport credentials.
func BuildTestMessage(to string, d TemplateData) Message {
	return Message{
		To:       []string{to},
		Subject:  "Mail transport check",
		TextBody: fmt.Sprintf("This message confirms the mail transport is configured.\n\n%s", d.team()),
	}
}

func writeNormalizedPhone(b *strings.Builder, d TemplateData) {
	if d.NormalizedPhone != "" {
		fmt.Fprintf(b, "\nPhone (normalized): %s", d.NormalizedPhone)
	}
}

func wrapHTML(content, team string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    %s
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Sincerely,<br>%s</p>
</body>
</html>`, content, html.EscapeString(team))
}
