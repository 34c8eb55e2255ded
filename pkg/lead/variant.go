package lead

import (
	"fmt"
	"strings"
)

// Endpoint paths served by the dispatcher.
const (
	EndpointConsultation = "/api/consultation-submit"
	EndpointSubscribe    = "/api/secureai-subscribe"
	EndpointLegacy       = "/process_subscription"
)

// DefaultService labels email-only newsletter subscriptions.
const DefaultService = "SecureAI Updates"

// UnknownService is used when a per-item subscribe action has no service label.
const UnknownService = "Unknown Service"

// Variant describes one kind of form: where it posts, which fields it
// requires and what it tells the user along the way.
type Variant struct {
	Key      string
	Endpoint string
	Required []string
	// Fixed values are applied over whatever the form provides.
	Fixed map[string]string

	ValidationMessage   string
	InvalidEmailMessage string
	InProgressMessage   string
	SuccessMessage      string
	ErrorPrefix         string
	// MessageErrorPrefix labels error texts taken from a JSON body; "Error"
	// when empty.
	MessageErrorPrefix string
	// NetworkErrorMessage replaces the generic text shown when no response
	// arrived.
	NetworkErrorMessage string
	// AcceptsRedirect marks endpoints that answer success with a redirect.
	AcceptsRedirect bool
}

var (
	Consultation = Variant{
		Key:                 "consultation",
		Endpoint:            EndpointConsultation,
		Required:            []string{FieldName, FieldEmail},
		ValidationMessage:   "Please fill in all required fields (Name and Email).",
		InvalidEmailMessage: "Please enter a valid email address.",
		InProgressMessage:   "Sending your consultation request...",
		SuccessMessage:      "Consultation request submitted successfully! We will be in touch shortly.",
		ErrorPrefix:         "Error submitting request",
	}

	Notify = Variant{
		Key:                 "notify",
		Endpoint:            EndpointSubscribe,
		Required:            []string{FieldEmail},
		Fixed:               map[string]string{FieldService: DefaultService},
		ValidationMessage:   "Please provide your email address to subscribe.",
		InvalidEmailMessage: "Please enter a valid email address.",
		InProgressMessage:   "Subscribing you...",
		SuccessMessage:      "Subscription successful. Thank you!",
		ErrorPrefix:         "Error subscribing",
	}

	Subscription = Variant{
		Key:                 "subscription",
		Endpoint:            EndpointLegacy,
		Required:            []string{FieldName, FieldEmail, FieldPhone, FieldService},
		ValidationMessage:   "Please fill in all fields!",
		InvalidEmailMessage: "Please enter a valid email address.",
		InProgressMessage:   "Submitting your subscription...",
		SuccessMessage:      "Thank you for subscribing!",
		ErrorPrefix:         "Error subscribing",
		AcceptsRedirect:     true,
	}
)

// ForService returns the per-item subscribe variant for the named offering.
func ForService(service string) Variant {
	service = strings.TrimSpace(service)
	if service == "" {
		service = UnknownService
	}
	return Variant{
		Key:                 "service",
		Endpoint:            EndpointSubscribe,
		Required:            []string{FieldEmail},
		Fixed:               map[string]string{FieldService: service},
		ValidationMessage:   "Please enter a valid email address.",
		InvalidEmailMessage: "Please enter a valid email address.",
		InProgressMessage:   "Subscribing you...",
		SuccessMessage:      fmt.Sprintf("Successfully subscribed to updates for %q!", service),
		ErrorPrefix:         "Error subscribing",
		MessageErrorPrefix:  "Error subscribing",
		NetworkErrorMessage: "A network error occurred while subscribing. Please try again later.",
	}
}

// Lookup returns the named fixed variant.
func Lookup(key string) (Variant, bool) {
	for _, v := range []Variant{Consultation, Notify, Subscription} {
		if v.Key == key {
			return v, true
		}
	}
	return Variant{}, false
}

// Build applies the variant's fixed values to the form values and returns
// the resulting payload.
func (v Variant) Build(values map[string]string) Payload {
	merged := make(map[string]string, len(values)+len(v.Fixed))
	for k, val := range values {
		merged[k] = val
	}
	for k, val := range v.Fixed {
		merged[k] = val
	}
	return FromValues(merged)
}

// Validate returns the user-facing message for an invalid payload, or "" if
// the payload may be sent.
func (v Variant) Validate(p Payload) string {
	if len(p.Missing(v.Required)) > 0 {
		return v.ValidationMessage
	}
	if !LooksLikeEmail(strings.TrimSpace(p.Email)) {
		return v.InvalidEmailMessage
	}
	return ""
}
