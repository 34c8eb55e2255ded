// Package lead defines the submission payload shared by the website forms and
// the notification dispatcher, together with the form variants that populate it.
package lead

import (
	"strings"

	"github.com/samber/lo"
)

// Field names as they appear in form inputs and JSON bodies.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldCompany = "company"
	FieldMessage = "message"
	FieldService = "service"
)

// Payload is the data collected from one form or prompt interaction. A
// payload is built once per submission and never mutated afterwards.
type Payload struct {
	Name    string `json:"name,omitempty" form:"name"`
	Email   string `json:"email,omitempty" form:"email"`
	Phone   string `json:"phone,omitempty" form:"phone"`
	Company string `json:"company,omitempty" form:"company"`
	Message string `json:"message,omitempty" form:"message"`
	Service string `json:"service,omitempty" form:"service"`
}

// FromValues builds a payload from input values keyed by input name.
// Unknown keys are ignored.
func FromValues(values map[string]string) Payload {
	return Payload{
		Name:    values[FieldName],
		Email:   values[FieldEmail],
		Phone:   values[FieldPhone],
		Company: values[FieldCompany],
		Message: values[FieldMessage],
		Service: values[FieldService],
	}
}

// Value returns the raw value of the named field.
func (p Payload) Value(field string) string {
	switch field {
	case FieldName:
		return p.Name
	case FieldEmail:
		return p.Email
	case FieldPhone:
		return p.Phone
	case FieldCompany:
		return p.Company
	case FieldMessage:
		return p.Message
	case FieldService:
		return p.Service
	}
	return ""
}

// Missing returns the fields of required that are empty after trimming
// whitespace, in the order given.
func (p Payload) Missing(required []string) []string {
	return lo.Filter(required, func(field string, _ int) bool {
		return strings.TrimSpace(p.Value(field)) == ""
	})
}

// Absent returns the fields of required that are empty, in the order given.
// Unlike Missing, a whitespace-only value counts as present.
func (p Payload) Absent(required []string) []string {
	return lo.Filter(required, func(field string, _ int) bool {
		return p.Value(field) == ""
	})
}

// LooksLikeEmail reports whether s contains both "@" and ".". This is the
// minimal shape check the website applies; it is not an address validator.
func LooksLikeEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}
