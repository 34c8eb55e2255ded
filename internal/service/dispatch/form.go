package dispatch

import (
	"github.com/securewave/securewave_backend/pkg/email"
	"github.com/securewave/securewave_backend/pkg/lead"
)

type templateFunc func(lead.Payload, email.TemplateData) email.Message

// Form describes how one kind of submission is validated and which pair of
// notifications it produces.
type Form struct {
	Key      string
	Required []string
	// Defaults fill fields the submitter left blank.
	Defaults map[string]string
	ThankYou templateFunc
	Alert    templateFunc
}

var (
	// Subscription is the legacy full subscription form.
	Subscription = Form{
		Key:      "subscription",
		Required: []string{lead.FieldName, lead.FieldEmail, lead.FieldPhone, lead.FieldService},
		ThankYou: email.BuildSubscriptionThankYou,
		Alert:    email.BuildSubscriptionAlert,
	}

	Consultation = Form{
		Key:      "consultation",
		Required: []string{lead.FieldName, lead.FieldEmail},
		ThankYou: email.BuildConsultationThankYou,
		Alert:    email.BuildConsultationAlert,
	}

	// ServiceUpdates covers email-only subscriptions, both the newsletter form
	// and the per-offering subscribe action.
	ServiceUpdates = Form{
		Key:      "service",
		Required: []string{lead.FieldEmail},
		Defaults: map[string]string{lead.FieldService: lead.DefaultService},
		ThankYou: email.BuildServiceThankYou,
		Alert:    email.BuildServiceAlert,
	}
)

func (f Form) applyDefaults(p lead.Payload) lead.Payload {
	for field, val := range f.Defaults {
		if p.Value(field) != "" {
			continue
		}
		switch field {
		case lead.FieldService:
			p.Service = val
		case lead.FieldCompany:
			p.Company = val
		case lead.FieldMessage:
			p.Message = val
		}
	}
	return p
}
