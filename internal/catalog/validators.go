package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

func buildDefinitions() []FieldDefinition {
	return []FieldDefinition{
		{
			Key:      FieldPropertyType,
			Prompt:   "¿Qué tipo de propiedad quieres vender? Por ejemplo: apartamento, casa, local comercial, oficina, lote, finca, etc.",
			Validate: validatePropertyType,
			Acknowledge: func(v any) string {
				return fmt.Sprintf("Perfecto, un %v. ", v)
			},
		},
		{
			Key:      FieldArea,
			Prompt:   "¿Cuál es el área total en metros cuadrados?",
			Validate: rangeValidator(1, 9999),
			Acknowledge: func(v any) string {
				return fmt.Sprintf("Entendido, %v m². ", v)
			},
		},
		{
			Key:    FieldRooms,
			Prompt: "¿Cuántas habitaciones tiene?",
			AppliesWhen: func(f Fields) bool {
				return typeIn(f, "apartamento", "casa", "finca")
			},
			Validate: rangeValidator(0, 20),
			Acknowledge: func(v any) string {
				return fmt.Sprintf("%v habitaciones, perfecto. ", v)
			},
		},
		{
			Key:    FieldBathrooms,
			Prompt: "¿Cuántos baños tiene? (Incluye baños completos y medios baños)",
			AppliesWhen: func(f Fields) bool {
				return typeIn(f, "apartamento", "casa", "oficina", "finca")
			},
			Validate: rangeValidator(0, 10),
			Acknowledge: func(v any) string {
				return fmt.Sprintf("%v baños, excelente. ", v)
			},
		},
		{
			Key:      FieldPrice,
			Prompt:   "¿En cuánto esperas vender la propiedad? (en pesos colombianos)",
			Validate: validatePrice,
			Acknowledge: func(v any) string {
				return fmt.Sprintf("Precio objetivo: %s. ", FormatPesos(v))
			},
		},
		{
			Key:      FieldCondition,
			Prompt:   "¿Cuál es el estado actual de la propiedad? (nueva, usada pero en buen estado, necesita remodelación)",
			Validate: validateCondition,
			Acknowledge: func(v any) string {
				s, _ := v.(string)
				return fmt.Sprintf("Estado: %s. ", strings.ReplaceAll(s, "_", " "))
			},
		},
		{
			Key:      FieldParking,
			Prompt:   "¿Tiene parqueadero?",
			Validate: validateParking,
			Acknowledge: func(v any) string {
				if b, _ := v.(bool); b {
					return "Con parqueadero incluido. "
				}
				return "Sin parqueadero. "
			},
		},
		{
			Key:      FieldAvailability,
			Prompt:   "¿Cuándo podrían los interesados visitar la propiedad? (entre semana, fines de semana, cualquier día, etc.)",
			Validate: validateAvailability,
			Acknowledge: func(v any) string {
				return fmt.Sprintf("Disponibilidad para visitas: %v. ", v)
			},
		},
		{
			Key:      FieldTaxReceipt,
			Prompt:   "Ahora necesito que me envíes una foto o PDF del recibo de predial de la propiedad. 📋",
			Document: true,
		},
		{
			Key:      FieldTitleCert,
			Prompt:   "Perfecto, ahora necesito que me envíes una foto o PDF del certificado de libertad y tradición (máximo 3 meses de expedición). 📜",
			Document: true,
		},
	}
}

func validatePropertyType(input string) (any, bool) {
	lower := strings.ToLower(input)
	for _, t := range PropertyTypes {
		if strings.Contains(lower, t) {
			return t, true
		}
	}
	return nil, false
}

// rangeValidator extracts the first integer in the input and accepts it
// when within [min, max].
func rangeValidator(min, max int64) func(string) (any, bool) {
	return func(input string) (any, bool) {
		match := digitRun.FindString(input)
		if match == "" {
			return nil, false
		}
		n, err := strconv.ParseInt(match, 10, 64)
		if err != nil || n < min || n > max {
			return nil, false
		}
		return n, true
	}
}

func validatePrice(input string) (any, bool) {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	// six digits is the 100,000 peso floor
	if digits.Len() < 6 {
		return nil, false
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return nil, false
	}
	return n, true
}

func validateCondition(input string) (any, bool) {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "nueva") || strings.Contains(lower, "estrenar"):
		return ConditionNew, true
	case strings.Contains(lower, "remodelación") || strings.Contains(lower, "remodelacion") || strings.Contains(lower, "arreglos"):
		return ConditionRemodel, true
	case strings.Contains(lower, "usada") || strings.Contains(lower, "buen estado"):
		return ConditionUsedGood, true
	}
	return nil, false
}

func validateParking(input string) (any, bool) {
	lower := strings.ToLower(input)
	// The affirmative branch wins on overlap, so "no tiene parqueadero"
	// records true. Inherited precedence, kept for compatibility.
	switch {
	case strings.Contains(lower, "sí") || strings.Contains(lower, "si") || strings.Contains(lower, "tiene"):
		return true, true
	case strings.Contains(lower, "no"):
		return false, true
	}
	return nil, false
}

func validateAvailability(input string) (any, bool) {
	trimmed := strings.TrimSpace(input)
	if len([]rune(trimmed)) > 3 {
		return trimmed, true
	}
	return nil, false
}

// FormatPesos renders an integer value as Colombian pesos with dot
// thousands separators.
func FormatPesos(v any) string {
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case int:
		n = int64(t)
	case float64:
		n = int64(t)
	default:
		return fmt.Sprintf("$%v", v)
	}

	s := strconv.FormatInt(n, 10)
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := "$" + strings.Join(parts, ".")
	if negative {
		out = "-" + out
	}
	return out
}
