// Package catalog defines the static table of collectible property
// attributes: their ordering, prompts, applicability conditions, and
// input validators. The catalog drives the intake conversation step
// order and completion tracking.
package catalog

// Field keys, in default step order.
const (
	FieldPropertyType = "tipo_propiedad"
	FieldArea         = "area_m2"
	FieldRooms        = "habitaciones"
	FieldBathrooms    = "banos"
	FieldPrice        = "precio_venta"
	FieldCondition    = "estado_propiedad"
	FieldParking      = "parqueadero"
	FieldAvailability = "disponibilidad_visita"
	FieldTaxReceipt   = "predial"
	FieldTitleCert    = "certificado_libertad"
)

// Property type vocabulary recognized by the type validator.
var PropertyTypes = []string{
	"apartamento", "casa", "local", "oficina", "lote", "finca", "bodega", "consultorio",
}

// Property condition values.
const (
	ConditionNew      = "nueva"
	ConditionUsedGood = "usada_buen_estado"
	ConditionRemodel  = "para_remodelar"
)

// Fields is the mutable property field map of a listing. Values are
// scalars (string, int64, bool) or an Attachment for document fields.
type Fields map[string]any

// FieldDefinition describes one collectible attribute.
type FieldDefinition struct {
	// Key is the unique field name.
	Key string

	// Prompt is the question asked when this field is the current step.
	Prompt string

	// Document marks fields whose value is an uploaded file attachment.
	Document bool

	// AppliesWhen reports whether the field is required given the
	// current field values. Nil means unconditionally required.
	AppliesWhen func(Fields) bool

	// Validate parses raw user input into a typed value. The second
	// return is false when no value could be extracted.
	Validate func(string) (any, bool)

	// Acknowledge returns the short confirmation phrase prepended to
	// the next prompt after a successful extraction.
	Acknowledge func(any) string
}

// Applies reports whether the field is required for the given values.
func (d *FieldDefinition) Applies(fields Fields) bool {
	return d.AppliesWhen == nil || d.AppliesWhen(fields)
}

// Complete reports whether the field holds a satisfying value. Document
// fields require a validated attachment; scalar fields require any
// non-nil value.
func (d *FieldDefinition) Complete(fields Fields) bool {
	v, ok := fields[d.Key]
	if !ok || v == nil {
		return false
	}
	if d.Document {
		att, ok := AttachmentFrom(v)
		return ok && att.Validated
	}
	return true
}

var definitions = buildDefinitions()

// Definitions returns all field definitions in step order.
func Definitions() []FieldDefinition {
	return definitions
}

// Lookup returns the definition for the given field key.
func Lookup(key string) (*FieldDefinition, bool) {
	for i := range definitions {
		if definitions[i].Key == key {
			return &definitions[i], true
		}
	}
	return nil, false
}

// IsDocumentField reports whether the key names a document field.
func IsDocumentField(key string) bool {
	d, ok := Lookup(key)
	return ok && d.Document
}

// Missing returns the applicable fields not yet complete, in step order.
func Missing(fields Fields) []string {
	var missing []string
	for i := range definitions {
		d := &definitions[i]
		if !d.Applies(fields) {
			continue
		}
		if !d.Complete(fields) {
			missing = append(missing, d.Key)
		}
	}
	return missing
}

// Applicable returns the keys of all fields required for the given
// values, complete or not.
func Applicable(fields Fields) []string {
	var keys []string
	for i := range definitions {
		if definitions[i].Applies(fields) {
			keys = append(keys, definitions[i].Key)
		}
	}
	return keys
}

// IsComplete reports whether every applicable field is complete.
func IsComplete(fields Fields) bool {
	return len(Missing(fields)) == 0
}

// Progress returns the rounded percentage of applicable fields that are
// complete. The denominator tracks current applicability, so it shifts
// when the property type changes conditional requirements.
func Progress(fields Fields) int {
	var total, complete int
	for i := range definitions {
		d := &definitions[i]
		if !d.Applies(fields) {
			continue
		}
		total++
		if d.Complete(fields) {
			complete++
		}
	}
	if total == 0 {
		return 0
	}
	return int(float64(complete)/float64(total)*100 + 0.5)
}

func propertyType(fields Fields) string {
	v, _ := fields[FieldPropertyType].(string)
	return v
}

func typeIn(fields Fields, types ...string) bool {
	t := propertyType(fields)
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}
	return false
}
