package conversation

import (
	"fmt"
	"strings"

	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/internal/listing"
)

const msgUnknownSender = "¡Hola! 👋 No encontré tu información en nuestro sistema. Por favor, registra primero tu propiedad en nuestra página web y con gusto te acompaño en el proceso. 🏠"

const msgAlreadyCompleted = "¡Tu proceso ya está completado! ✅ Nuestro equipo revisará la información de tu propiedad y te contactará pronto. Si necesitas hacer algún cambio, comunícate con nosotros."

const msgTransientError = "Ups, tuvimos un problema procesando tu mensaje. 🙏 Por favor, inténtalo de nuevo en un momento."

const msgEditPrompt = "¡Claro! ¿Qué te gustaría modificar? Por ejemplo: \"El precio es 350 millones\" o \"Son 4 habitaciones\". Cuando termines, escribe *LISTO*."

const msgConfirmRetry = "Por favor responde *SÍ* para confirmar que todo está correcto, o *MODIFICAR* si quieres cambiar algo. 😊"

const msgEditContinue = "¿Deseas cambiar algo más? Escribe *LISTO* cuando termines. ✏️"

// fieldLabels maps field keys to the emoji labels used in the
// confirmation summary.
var fieldLabels = []struct {
	key   string
	label string
}{
	{catalog.FieldPropertyType, "🏠 Tipo"},
	{catalog.FieldArea, "📐 Área"},
	{catalog.FieldRooms, "🛏️ Habitaciones"},
	{catalog.FieldBathrooms, "🚿 Baños"},
	{catalog.FieldPrice, "💰 Precio"},
	{catalog.FieldCondition, "🔑 Estado"},
	{catalog.FieldParking, "🚗 Parqueadero"},
	{catalog.FieldAvailability, "📅 Visitas"},
}

var conditionLabels = map[string]string{
	catalog.ConditionNew:      "Nueva",
	catalog.ConditionUsedGood: "Usada, en buen estado",
	catalog.ConditionRemodel:  "Para remodelar",
}

func summaryMessage(l *listing.Listing) string {
	var b strings.Builder
	b.WriteString("📋 *Resumen de tu propiedad:*\n\n")

	for _, entry := range fieldLabels {
		v, ok := l.Fields[entry.key]
		if !ok || v == nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", entry.label, summaryValue(entry.key, v))
	}

	var docs []string
	for _, key := range []string{catalog.FieldTaxReceipt, catalog.FieldTitleCert} {
		if att, ok := catalog.AttachmentFrom(l.Fields[key]); ok && att.Validated {
			docs = append(docs, docDisplayName(key))
		}
	}
	if len(docs) > 0 {
		fmt.Fprintf(&b, "📄 Documentos: %s ✅\n", strings.Join(docs, ", "))
	}

	b.WriteString("\n¿Está todo correcto? Responde *SÍ* para confirmar o *MODIFICAR* para hacer cambios.")
	return b.String()
}

func summaryValue(key string, v any) string {
	switch key {
	case catalog.FieldArea:
		return fmt.Sprintf("%s m²", plainNumber(v))
	case catalog.FieldPrice:
		return catalog.FormatPesos(v)
	case catalog.FieldCondition:
		if s, ok := v.(string); ok {
			if label, ok := conditionLabels[s]; ok {
				return label
			}
		}
		return fmt.Sprintf("%v", v)
	case catalog.FieldParking:
		if hasParking, ok := v.(bool); ok {
			if hasParking {
				return "Sí"
			}
			return "No"
		}
		return fmt.Sprintf("%v", v)
	case catalog.FieldRooms, catalog.FieldBathrooms:
		return plainNumber(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// plainNumber renders numeric field values without a decimal point.
// Values read back from JSON storage arrive as float64.
func plainNumber(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}

func completionMessage(l *listing.Listing) string {
	name := l.Client.FirstName
	if name == "" {
		name = "vendedor"
	}
	return fmt.Sprintf(`🎉 ¡Felicitaciones, %s! El registro de tu propiedad quedó completo.

📌 Número de registro: *%s*

*Próximos pasos:*
1️⃣ Nuestro equipo verificará la información y los documentos
2️⃣ Coordinaremos la toma de fotos profesionales
3️⃣ Publicaremos tu propiedad en los portales inmobiliarios

Te contactaremos pronto. ¡Gracias por confiar en nosotros! 🏠✨`, name, shortID(l))
}

func shortID(l *listing.Listing) string {
	id := l.ID.String()
	if len(id) >= 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

func docDisplayName(kind string) string {
	if kind == catalog.FieldTitleCert {
		return "certificado de libertad y tradición"
	}
	return "recibo de predial"
}

func documentAcceptedMessage(kind string, next string) string {
	msg := fmt.Sprintf("✅ ¡Perfecto! Recibí tu %s y todo se ve en orden.", docDisplayName(kind))
	if next != "" {
		msg += "\n\n" + next
	}
	return msg
}

func documentRejectedMessage(kind, filename, reason string) string {
	criteria := taxReceiptCriteria
	if kind == catalog.FieldTitleCert {
		criteria = titleCertCriteria
	}
	return fmt.Sprintf(`❌ No pude validar tu %s.

%s

Para que sea válido, verifica que:
%s

Por favor, envía una nueva foto o PDF del documento. 📎`, docFileName(kind, filename), reason, criteria)
}

// docFileName names the offending file when the sender gave it a name,
// otherwise falls back to the document's display name.
func docFileName(kind, filename string) string {
	if filename == "" {
		return docDisplayName(kind)
	}
	return fmt.Sprintf("%s \"%s\"", docDisplayName(kind), filename)
}

func documentErrorMessage(kind, filename string) string {
	return fmt.Sprintf("❌ Hubo un problema técnico al procesar tu %s. Por favor, intenta enviarlo nuevamente. 🙏", docFileName(kind, filename))
}

const taxReceiptCriteria = `• Sea el recibo de predial de la propiedad (no una factura de servicios)
• Se lea claramente el número predial y la dirección
• Corresponda al año gravable vigente
• La imagen esté completa y bien iluminada`

const titleCertCriteria = `• Sea el certificado de libertad y tradición oficial
• Tenga máximo 3 meses de expedición
• Se lea claramente la matrícula inmobiliaria
• La imagen esté completa y bien iluminada`

func documentOutOfTurnMessage(fields catalog.Fields) string {
	msg := "¡Gracias por el documento! 📎 Lo tendré en cuenta, pero primero necesito otra información."
	if prompt := currentPrompt(fields); prompt != "" {
		msg += "\n\n" + prompt
	}
	return msg
}
