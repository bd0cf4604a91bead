package notify

import (
	"bytes"
	"html/template"

	"tournament-reg/internal/pricing"
)

const (
	SubjectParticipant = "Your %s Registration is Confirmed - Thank You!"
	SubjectPartner     = "You've been registered as a partner - %s"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #1e3a8a, #3b82f6); color: white; padding: 30px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background: #f9fafb; padding: 30px; border-radius: 0 0 8px 8px; }
    .info-box { background: white; padding: 15px; margin: 15px 0; border-left: 4px solid #fbbf24; border-radius: 4px; }
    .footer { text-align: center; margin-top: 30px; color: #666; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>Registration Confirmed!</h1></div>
    <div class="content">
      <p>Hi <strong>{{.Name}}</strong>,</p>
      <p>Thanks for registering for the {{.Tournament}}. Your booking is confirmed.</p>
      <div class="info-box">
        <p><strong>Payment Reference:</strong> {{.PaymentRef}}</p>
        <p><strong>Selected Events:</strong><br>{{range $i, $e := .Events}}{{if $i}}<br>{{end}}{{$e}}{{end}}</p>
        {{if .PartnerOf}}<p><strong>Partner:</strong> {{.PartnerOf}}</p>{{end}}
      </div>
      {{if .Schedule}}<div class="info-box"><p><strong>Tournament Schedule:</strong></p><p>{{.Schedule}}</p></div>{{end}}
      <p>Venue details and match schedules will be shared shortly.</p>
      <p>If you have questions, reply to this email.</p>
      <p style="margin-top: 30px;"><strong>See you on court!</strong></p>
      <p>Tournament Team</p>
    </div>
    <div class="footer"><p>This is an automated confirmation email</p></div>
  </div>
</body>
</html>
`))

type confirmationData struct {
	Name       string
	Tournament string
	Schedule   string
	PaymentRef string
	Events     []string
	PartnerOf  string
}

// Confirmation renders the email body. partnerOf is the registering
// participant's name when the recipient is their partner.
func Confirmation(tournament, schedule, name, paymentRef string, events []string, partnerOf string) (string, error) {
	labels := make([]string, 0, len(events))
	for _, e := range events {
		labels = append(labels, pricing.ParseKey(e).Label())
	}
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, confirmationData{
		Name:       name,
		Tournament: tournament,
		Schedule:   schedule,
		PaymentRef: paymentRef,
		Events:     labels,
		PartnerOf:  partnerOf,
	})
	return buf.String(), err
}
