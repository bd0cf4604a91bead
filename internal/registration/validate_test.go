package registration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "tournament-reg/internal/errors"
	"tournament-reg/internal/models"
)

func validRequest() models.RegistrationRequest {
	return models.RegistrationRequest{
		Name:           "Asha Rao",
		Email:          "asha@example.com",
		Phone:          "+91 98765 43210",
		Address:        "12 Court Road, Pune",
		SelectedEvents: []string{"u19_girls_Singles", "u19_girls_Doubles"},
		Partners: map[string]models.PartnerInfo{
			"u19_girls_Doubles": {Name: "Meera", Phone: "9876500000", Email: "meera@example.com"},
		},
	}
}

func requireRejected(t *testing.T, err error, reason string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrValidation))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Contains(t, ve.Reason, reason)
}

func TestValidate_Accepts(t *testing.T) {
	require.NoError(t, Validate(validRequest()))

	req := validRequest()
	req.SelectedEvents = []string{"open_beginners_men_Singles"}
	req.Partners = nil
	require.NoError(t, Validate(req))
}

func TestValidate_MissingAddress(t *testing.T) {
	req := validRequest()
	req.Address = ""
	requireRejected(t, Validate(req), "missing required fields")

	req.Address = "   "
	requireRejected(t, Validate(req), "missing required fields")
}

func TestValidate_MissingContactFields(t *testing.T) {
	for name, mutate := range map[string]func(*models.RegistrationRequest){
		"name":  func(r *models.RegistrationRequest) { r.Name = "" },
		"email": func(r *models.RegistrationRequest) { r.Email = "" },
		"phone": func(r *models.RegistrationRequest) { r.Phone = "" },
	} {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			requireRejected(t, Validate(req), "missing required fields")
		})
	}
}

func TestValidate_EventCount(t *testing.T) {
	req := validRequest()
	req.SelectedEvents = nil
	requireRejected(t, Validate(req), "missing required fields")

	req.SelectedEvents = []string{"u12_boys_Singles", "u19_boys_Singles", "35plus_men_Singles", "50plus_men_Singles"}
	requireRejected(t, Validate(req), "maximum 3 events")
}

func TestValidate_DuplicateEvent(t *testing.T) {
	req := validRequest()
	req.SelectedEvents = []string{"u19_girls_Singles", "u19_girls_Singles"}
	requireRejected(t, Validate(req), "duplicate event selection")
}

func TestValidate_DoublesWithoutPartnerEmail(t *testing.T) {
	req := validRequest()
	req.Partners["u19_girls_Doubles"] = models.PartnerInfo{Name: "Meera", Phone: "9876500000"}
	requireRejected(t, Validate(req), "partner details required for u19_girls_Doubles")
}

func TestValidate_MixedWithoutPartner(t *testing.T) {
	req := validRequest()
	req.SelectedEvents = []string{"open_mixed_Mixed"}
	req.Partners = nil
	requireRejected(t, Validate(req), "partner details required for open_mixed_Mixed")
}

func TestValidate_FirstFailureWins(t *testing.T) {
	req := validRequest()
	req.Address = ""
	req.SelectedEvents = []string{"a_Singles", "b_Singles", "c_Singles", "d_Singles"}
	requireRejected(t, Validate(req), "missing required fields")
}
