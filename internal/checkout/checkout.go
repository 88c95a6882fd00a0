// Package checkout is the stateless validation step behind the checkout
// form. No retries, no state: validate the triple, hand back either a
// confirmation payload or a per-field error map.
package checkout

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// FieldErrors maps a form field to its validation messages.
type FieldErrors map[string][]string

type Confirmation struct {
	Message           string `json:"message"`
	OrderRef          string `json:"order_ref"`
	EstimatedDelivery string `json:"estimated_delivery"`
	TrackingNote      string `json:"tracking_note"`
}

// Submit validates the form. On success the confirmation carries the fixed
// delivery copy plus a fresh order reference; there is no order record
// behind it.
func Submit(req Request) (*Confirmation, FieldErrors) {
	errs := validate(req)
	if len(errs) > 0 {
		return nil, errs
	}

	return &Confirmation{
		Message:           "Order placed successfully!",
		OrderRef:          uuid.NewString(),
		EstimatedDelivery: "Your order will be delivered in next 2-4 business days.",
		TrackingNote:      "You will receive a tracking details via email.",
	}, nil
}

func validate(req Request) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = append(errs["name"], "Name is required.")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs["email"] = append(errs["email"], "Email is required.")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = append(errs["email"], "Please enter a valid email address.")
	}

	if strings.TrimSpace(req.Address) == "" {
		errs["address"] = append(errs["address"], "Address is required.")
	}

	return errs
}
