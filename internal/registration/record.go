package registration

import (
	"strings"

	"tournament-reg/internal/models"
)

// UniquePartners lists the partners of the selected events in selection
// order. A partner entered for several events appears once, keyed by email.
func UniquePartners(req models.RegistrationRequest) []models.PartnerInfo {
	var out []models.PartnerInfo
	seen := map[string]bool{}
	for _, key := range req.SelectedEvents {
		p, ok := req.Partners[key]
		if !ok || (blank(p.Name) && blank(p.Email)) {
			continue
		}
		id := strings.ToLower(strings.TrimSpace(p.Email))
		if id == "" {
			id = "name:" + strings.TrimSpace(p.Name) + "|" + strings.TrimSpace(p.Phone)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, p)
	}
	return out
}

// BuildRecord assembles the sheet row for a verified registration.
func BuildRecord(req models.RegistrationRequest, total int, paymentRef, createdAt string) models.RegistrationRecord {
	return models.RegistrationRecord{
		CreatedAt:  createdAt,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Events:     append([]string(nil), req.SelectedEvents...),
		Partners:   UniquePartners(req),
		Total:      total,
		PaymentRef: paymentRef,
		Status:     models.StatusCompleted,
	}
}
