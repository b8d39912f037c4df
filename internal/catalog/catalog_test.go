package catalog_test

import (
	"testing"
	"time"

	"github.com/vendetucasa/intake/internal/catalog"
)

func TestMissing_EmptyFields(t *testing.T) {
	missing := catalog.Missing(catalog.Fields{})

	// rooms and bathrooms are conditional on property type
	want := []string{
		catalog.FieldPropertyType,
		catalog.FieldArea,
		catalog.FieldPrice,
		catalog.FieldCondition,
		catalog.FieldParking,
		catalog.FieldAvailability,
		catalog.FieldTaxReceipt,
		catalog.FieldTitleCert,
	}

	if len(missing) != len(want) {
		t.Fatalf("Missing() returned %d fields, want %d: %v", len(missing), len(want), missing)
	}
	for i, key := range want {
		if missing[i] != key {
			t.Errorf("Missing()[%d] = %s, want %s", i, missing[i], key)
		}
	}
}

func TestMissing_ConditionalFields(t *testing.T) {
	cases := []struct {
		propertyType  string
		wantRooms     bool
		wantBathrooms bool
	}{
		{"apartamento", true, true},
		{"casa", true, true},
		{"finca", true, true},
		{"oficina", false, true},
		{"lote", false, false},
		{"local", false, false},
		{"bodega", false, false},
		{"consultorio", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.propertyType, func(t *testing.T) {
			fields := catalog.Fields{catalog.FieldPropertyType: tc.propertyType}
			missing := catalog.Missing(fields)

			if got := contains(missing, catalog.FieldRooms); got != tc.wantRooms {
				t.Errorf("Missing() includes habitaciones = %v, want %v", got, tc.wantRooms)
			}
			if got := contains(missing, catalog.FieldBathrooms); got != tc.wantBathrooms {
				t.Errorf("Missing() includes banos = %v, want %v", got, tc.wantBathrooms)
			}
		})
	}
}

func TestApplicable_ExcludesConditional(t *testing.T) {
	fields := catalog.Fields{catalog.FieldPropertyType: "lote"}
	applicable := catalog.Applicable(fields)

	if contains(applicable, catalog.FieldRooms) {
		t.Error("Applicable() includes habitaciones for lote")
	}
	if contains(applicable, catalog.FieldBathrooms) {
		t.Error("Applicable() includes banos for lote")
	}
	if len(applicable) != 8 {
		t.Errorf("Applicable() returned %d fields for lote, want 8", len(applicable))
	}
}

func TestDocumentField_RequiresValidation(t *testing.T) {
	fields := catalog.Fields{
		catalog.FieldTaxReceipt: catalog.Attachment{
			Validated:  false,
			Confidence: 40,
			UploadedAt: time.Now(),
		},
	}

	missing := catalog.Missing(fields)
	if !contains(missing, catalog.FieldTaxReceipt) {
		t.Error("Missing() omits predial with unvalidated attachment")
	}

	fields[catalog.FieldTaxReceipt] = catalog.Attachment{Validated: true, Confidence: 80}
	missing = catalog.Missing(fields)
	if contains(missing, catalog.FieldTaxReceipt) {
		t.Error("Missing() includes predial with validated attachment")
	}
}

func TestDocumentField_DecodedAttachment(t *testing.T) {
	// attachments read back from JSON storage arrive as generic maps
	fields := catalog.Fields{
		catalog.FieldTitleCert: map[string]any{
			"validated":  true,
			"confidence": float64(85),
			"filename":   "certificado.pdf",
		},
	}

	missing := catalog.Missing(fields)
	if contains(missing, catalog.FieldTitleCert) {
		t.Error("Missing() includes certificado_libertad with decoded validated attachment")
	}
}

func TestValidate_PropertyType(t *testing.T) {
	def, ok := catalog.Lookup(catalog.FieldPropertyType)
	if !ok {
		t.Fatal("Lookup(tipo_propiedad) failed")
	}

	v, ok := def.Validate("quiero vender un local comercial")
	if !ok {
		t.Fatal("Validate() rejected valid property type")
	}
	if v != "local" {
		t.Errorf("Validate() = %v, want local", v)
	}

	if _, ok := def.Validate("una mansión"); ok {
		t.Error("Validate() accepted unknown property type")
	}
}

func TestValidate_Area(t *testing.T) {
	def, _ := catalog.Lookup(catalog.FieldArea)

	v, ok := def.Validate("tiene como 85 m2 aprox")
	if !ok {
		t.Fatal("Validate() rejected valid area")
	}
	if v != int64(85) {
		t.Errorf("Validate() = %v, want 85", v)
	}

	if _, ok := def.Validate("demasiado grande"); ok {
		t.Error("Validate() accepted input without digits")
	}
	if _, ok := def.Validate("10000 metros"); ok {
		t.Error("Validate() accepted out-of-range area")
	}
}

func TestValidate_Price(t *testing.T) {
	def, _ := catalog.Lookup(catalog.FieldPrice)

	v, ok := def.Validate("350.000.000 pesos")
	if !ok {
		t.Fatal("Validate() rejected valid price")
	}
	if v != int64(350000000) {
		t.Errorf("Validate() = %v, want 350000000", v)
	}

	if _, ok := def.Validate("50000"); ok {
		t.Error("Validate() accepted price below minimum")
	}
}

func TestValidate_Condition(t *testing.T) {
	def, _ := catalog.Lookup(catalog.FieldCondition)

	cases := []struct {
		input string
		want  string
	}{
		{"es nueva, para estrenar", catalog.ConditionNew},
		{"necesita remodelación", catalog.ConditionRemodel},
		{"usada pero en buen estado", catalog.ConditionUsedGood},
	}

	for _, tc := range cases {
		v, ok := def.Validate(tc.input)
		if !ok {
			t.Errorf("Validate(%q) rejected valid condition", tc.input)
			continue
		}
		if v != tc.want {
			t.Errorf("Validate(%q) = %v, want %s", tc.input, v, tc.want)
		}
	}

	if _, ok := def.Validate("regular"); ok {
		t.Error("Validate() accepted unknown condition")
	}
}

func TestValidate_Parking(t *testing.T) {
	def, _ := catalog.Lookup(catalog.FieldParking)

	v, ok := def.Validate("sí tiene")
	if !ok || v != true {
		t.Errorf("Validate(sí tiene) = %v, %v, want true", v, ok)
	}

	v, ok = def.Validate("no")
	if !ok || v != false {
		t.Errorf("Validate(no) = %v, %v, want false", v, ok)
	}

	if _, ok := def.Validate("tal vez"); ok {
		t.Error("Validate() accepted ambiguous parking answer")
	}

	// Affirmative wording takes precedence over negation.
	v, ok = def.Validate("no tiene parqueadero")
	if !ok || v != true {
		t.Errorf("Validate(no tiene parqueadero) = %v, %v, want true", v, ok)
	}
}

func TestValidate_Availability(t *testing.T) {
	def, _ := catalog.Lookup(catalog.FieldAvailability)

	v, ok := def.Validate("fines de semana")
	if !ok {
		t.Fatal("Validate() rejected valid availability")
	}
	if v != "fines de semana" {
		t.Errorf("Validate() = %v, want verbatim text", v)
	}

	if _, ok := def.Validate("ya"); ok {
		t.Error("Validate() accepted too-short availability")
	}
}

func TestFormatPesos(t *testing.T) {
	if got := catalog.FormatPesos(int64(350000000)); got != "$350.000.000" {
		t.Errorf("FormatPesos(350000000) = %s, want $350.000.000", got)
	}
	if got := catalog.FormatPesos(int64(500)); got != "$500" {
		t.Errorf("FormatPesos(500) = %s, want $500", got)
	}
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
