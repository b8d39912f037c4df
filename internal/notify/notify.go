// Package notify emails the operations team when a seller finishes
// the intake conversation.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/internal/config"
	"github.com/vendetucasa/intake/internal/listing"
)

// Notifier sends completion notifications through Resend.
type Notifier struct {
	client     *resend.Client
	from       string
	recipients []string
	logger     *slog.Logger
}

// New builds a notifier from email configuration.
func New(cfg *config.EmailConfig, logger *slog.Logger) *Notifier {
	return &Notifier{
		client:     resend.NewClient(cfg.APIKey),
		from:       cfg.From,
		recipients: cfg.Recipients,
		logger:     logger.With("system", "notify"),
	}
}

// NotifyCompletion emails the full listing to the configured
// recipients.
func (n *Notifier) NotifyCompletion(ctx context.Context, l *listing.Listing) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.recipients,
		Subject: completionSubject(l),
		Text:    completionText(l),
		Html:    completionHTML(l),
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send completion email: %w", err)
	}

	n.logger.Info("completion notification sent",
		"listing_id", l.ID,
		"email_id", sent.Id,
		"recipients", len(n.recipients),
	)
	return nil
}

func completionSubject(l *listing.Listing) string {
	propertyType := "propiedad"
	if t, ok := l.Fields[catalog.FieldPropertyType].(string); ok && t != "" {
		propertyType = t
	}
	city := l.Client.City
	if city == "" {
		city = "sin ciudad"
	}
	return fmt.Sprintf("Nueva propiedad registrada: %s en %s", propertyType, city)
}

// summaryRows flattens the listing into label/value pairs shared by
// the text and HTML renderings.
func summaryRows(l *listing.Listing) [][2]string {
	rows := [][2]string{
		{"Vendedor", strings.TrimSpace(l.Client.FirstName + " " + l.Client.LastName)},
		{"Teléfono", l.Client.Phone},
		{"Ciudad", l.Client.City},
		{"Dirección", l.Client.Address},
	}
	if l.Client.Email != "" {
		rows = append(rows, [2]string{"Email", l.Client.Email})
	}

	fieldRows := []struct {
		key   string
		label string
	}{
		{catalog.FieldPropertyType, "Tipo de propiedad"},
		{catalog.FieldArea, "Área (m²)"},
		{catalog.FieldRooms, "Habitaciones"},
		{catalog.FieldBathrooms, "Baños"},
		{catalog.FieldPrice, "Precio esperado"},
		{catalog.FieldCondition, "Estado"},
		{catalog.FieldParking, "Parqueadero"},
		{catalog.FieldAvailability, "Disponibilidad de visitas"},
	}
	for _, fr := range fieldRows {
		v, ok := l.Fields[fr.key]
		if !ok || v == nil {
			continue
		}
		rows = append(rows, [2]string{fr.label, renderValue(fr.key, v)})
	}

	for _, key := range []string{catalog.FieldTaxReceipt, catalog.FieldTitleCert} {
		att, ok := catalog.AttachmentFrom(l.Fields[key])
		if !ok {
			continue
		}
		status := "recibido"
		if !att.Validated {
			status = "pendiente"
		}
		rows = append(rows, [2]string{documentLabel(key), fmt.Sprintf("%s (%s)", status, att.Filename)})
	}

	return rows
}

func documentLabel(key string) string {
	if key == catalog.FieldTitleCert {
		return "Certificado de libertad"
	}
	return "Recibo de predial"
}

func renderValue(key string, v any) string {
	switch key {
	case catalog.FieldPrice:
		return catalog.FormatPesos(v)
	case catalog.FieldParking:
		if hasParking, ok := v.(bool); ok {
			if hasParking {
				return "Sí"
			}
			return "No"
		}
	case catalog.FieldArea, catalog.FieldRooms, catalog.FieldBathrooms:
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("%d", int64(f))
		}
	}
	return fmt.Sprintf("%v", v)
}

func completionText(l *listing.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Registro completado: %s\n\n", l.ID)
	for _, row := range summaryRows(l) {
		fmt.Fprintf(&b, "%s: %s\n", row[0], row[1])
	}
	return b.String()
}

func completionHTML(l *listing.Listing) string {
	var b strings.Builder
	b.WriteString("<h2>Nueva propiedad registrada</h2>")
	fmt.Fprintf(&b, "<p>Registro <strong>%s</strong></p>", l.ID)
	b.WriteString("<table border=\"0\" cellpadding=\"4\">")
	for _, row := range summaryRows(l) {
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>", row[0], row[1])
	}
	b.WriteString("</table>")
	return b.String()
}
