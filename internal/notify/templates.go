// Package notify renders reservation emails and delivers them.  Rendering
// is pure; delivery goes through a Mailer and may fail without affecting the
// status change that triggered it.
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/ecowash/ecowash-backend/internal/model"
)

const (
	SubjectApproved = "✅ Votre réservation EcoWash est confirmée !"
	SubjectRejected = "❌ Votre réservation EcoWash a été refusée"

	companyAddress = "3030 Rue Hochelaga, Montreal, Qc H1W 1G2"
	companyPhone   = "438-674-3689"
)

var serviceNames = map[model.ServiceType]string{
	model.ServiceExterieur: "Lavage Extérieur (20-30$)",
	model.ServiceComplet:   "Lavage Complet (40-60$)",
	model.ServiceForfait:   "Forfait Mensuel (200$)",
}

var vehicleNames = map[model.VehicleType]string{
	model.VehicleBerline:     "Berline",
	model.VehicleSUV:         "SUV",
	model.VehicleCamionnette: "Camionnette",
	model.VehicleMoto:        "Moto",
	model.VehicleAutre:       "Autre",
}

// ServiceName is the customer-facing label of a wash package.
func ServiceName(s model.ServiceType) string {
	if n, ok := serviceNames[s]; ok {
		return n
	}
	return string(s)
}

// VehicleName is the customer-facing label of a vehicle type.
func VehicleName(v model.VehicleType) string {
	if n, ok := vehicleNames[v]; ok {
		return n
	}
	return string(v)
}

var (
	frWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	frMonths   = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"}
)

// FrenchDate formats d in Canadian French long form, e.g.
// "dimanche 1 juin 2025".  The calendar day is read in UTC, which is how
// reservation dates are stored.
func FrenchDate(d time.Time) string {
	d = d.UTC()
	return fmt.Sprintf("%s %d %s %d", frWeekdays[d.Weekday()], d.Day(), frMonths[d.Month()-1], d.Year())
}

type emailData struct {
	FullName string
	Service  string
	Vehicle  string
	Date     string
	Time     string
	Address  string
	Notes    string
	Reason   string
	Company  string
	Phone    string
}

func newEmailData(res model.Reservation, user model.UserSummary) emailData {
	return emailData{
		FullName: user.FirstName + " " + user.LastName,
		Service:  ServiceName(res.Service),
		Vehicle:  VehicleName(res.VehicleType),
		Date:     FrenchDate(res.Date),
		Time:     res.Time,
		Address:  res.Address,
		Notes:    res.Notes,
		Company:  companyAddress,
		Phone:    companyPhone,
	}
}

// RenderApproval returns the HTML body sent when a reservation is approved.
func RenderApproval(res model.Reservation, user model.UserSummary) (string, error) {
	return render(approvalTmpl, newEmailData(res, user))
}

// RenderRejection returns the HTML body sent when a reservation is refused.
func RenderRejection(res model.Reservation, user model.UserSummary, reason string) (string, error) {
	data := newEmailData(res, user)
	data.Reason = reason
	return render(rejectionTmpl, data)
}

func render(t *template.Template, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

const layoutHead = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #4A154B 0%, {{.Accent}} 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .info-box { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid {{.Accent}}; }
    .reason-box { background: #FEF2F2; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #DC2626; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    h1 { margin: 0; }
    .highlight { color: {{.Highlight}}; font-weight: bold; }
  </style>
</head>`

// The style block is static; the accent colours are spliced in before
// parsing so that only customer data goes through escaping.
func head(accent, highlight string) string {
	return strings.NewReplacer("{{.Accent}}", accent, "{{.Highlight}}", highlight).Replace(layoutHead)
}

const footer = `
      <div class="footer">
        <p>L'équipe EcoWash 🌿</p>
        <p><em>Le lavage automobile écologique</em></p>
      </div>
    </div>
  </div>
</body>
</html>
`

var approvalTmpl = template.Must(template.New("approval").Parse(head("#22C55E", "#22C55E") + `
<body>
  <div class="container">
    <div class="header">
      <h1>🚗 EcoWash</h1>
      <p>Votre réservation est confirmée !</p>
    </div>
    <div class="content">
      <p>Bonjour <strong>{{.FullName}}</strong>,</p>
      <p>Nous avons le plaisir de vous confirmer que votre réservation a été <span class="highlight">approuvée</span> !</p>
      <div class="info-box">
        <h3>📋 Détails de votre réservation</h3>
        <p><strong>Service :</strong> {{.Service}}</p>
        <p><strong>Véhicule :</strong> {{.Vehicle}}</p>
        <p><strong>Date :</strong> {{.Date}}</p>
        <p><strong>Heure :</strong> {{.Time}}</p>
        <p><strong>Adresse :</strong> {{.Address}}</p>
        {{- if .Notes}}
        <p><strong>Notes :</strong> {{.Notes}}</p>
        {{- end}}
      </div>
      <div class="info-box">
        <h3>📍 Notre adresse</h3>
        <p>{{.Company}}</p>
        <p><strong>Téléphone :</strong> {{.Phone}}</p>
      </div>
      <p><strong>Rappel :</strong> Le paiement se fait sur place.</p>
      <p>Merci de votre confiance et à bientôt !</p>` + footer))

var rejectionTmpl = template.Must(template.New("rejection").Parse(head("#DB2777", "#DC2626") + `
<body>
  <div class="container">
    <div class="header">
      <h1>🚗 EcoWash</h1>
      <p>Information sur votre réservation</p>
    </div>
    <div class="content">
      <p>Bonjour <strong>{{.FullName}}</strong>,</p>
      <p>Nous sommes désolés de vous informer que votre réservation a été <span class="highlight">refusée</span>.</p>
      <div class="reason-box">
        <h3>❌ Raison du refus</h3>
        <p>{{.Reason}}</p>
      </div>
      <div class="info-box">
        <h3>📋 Détails de la réservation</h3>
        <p><strong>Service :</strong> {{.Service}}</p>
        <p><strong>Véhicule :</strong> {{.Vehicle}}</p>
        <p><strong>Date demandée :</strong> {{.Date}}</p>
        <p><strong>Heure :</strong> {{.Time}}</p>
      </div>
      <p>N'hésitez pas à faire une nouvelle réservation avec une date différente ou à nous contacter pour plus d'informations.</p>
      <div class="info-box">
        <h3>📞 Nous contacter</h3>
        <p>{{.Company}}</p>
        <p><strong>Téléphone :</strong> {{.Phone}}</p>
      </div>` + footer))
