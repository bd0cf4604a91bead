package registration

import (
	"fmt"
	"strings"

	apperrors "tournament-reg/internal/errors"
	"tournament-reg/internal/models"
	"tournament-reg/internal/pricing"
)

// MaxEvents is how many events one participant may enter.
const MaxEvents = 3

// ValidationError is a user-correctable rejection. It matches
// apperrors.ErrValidation under errors.Is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return apperrors.ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Validate applies the registration rules in order; the first violation is returned.
func Validate(req models.RegistrationRequest) error {
	if blank(req.Name) || blank(req.Email) || blank(req.Phone) || blank(req.Address) {
		return invalid("missing required fields")
	}

	if len(req.SelectedEvents) == 0 {
		return invalid("missing required fields")
	}
	if len(req.SelectedEvents) > MaxEvents {
		return invalid("maximum %d events allowed", MaxEvents)
	}
	seen := make(map[string]bool, len(req.SelectedEvents))
	for _, key := range req.SelectedEvents {
		if seen[key] {
			return invalid("duplicate event selection: %s", key)
		}
		seen[key] = true
	}

	for _, key := range req.SelectedEvents {
		if !pricing.ParseKey(key).NeedsPartner() {
			continue
		}
		p, ok := req.Partners[key]
		if !ok || blank(p.Name) || blank(p.Phone) || blank(p.Email) {
			return invalid("partner details required for %s", key)
		}
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
