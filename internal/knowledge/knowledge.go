// Package knowledge holds the domain answer base consulted when a
// seller asks a question mid-intake instead of answering the current
// prompt. Lookups are best-effort substring matches over domain terms.
package knowledge

import "strings"

var propertyTypeAnswers = map[string]string{
	"apartamento": "Un apartamento es una unidad habitacional en un edificio con múltiples unidades.",
	"casa":        "Una casa es una vivienda independiente, generalmente con patio o jardín.",
	"local":       "Un local comercial es un espacio destinado para actividades comerciales o de servicios.",
	"oficina":     "Una oficina es un espacio destinado para actividades administrativas o profesionales.",
	"lote":        "Un lote es un terreno sin construcción, listo para edificar.",
	"finca":       "Una finca es una propiedad rural, generalmente con construcciones y terreno amplio.",
}

var questionIndicators = []string{
	"?", "qué", "cuál", "cómo", "cuándo", "dónde", "por qué",
	"cuenta como", "se considera", "puedo", "debo", "tengo que",
}

// Search looks up an answer for a free-form question. The boolean is
// false when no relevant entry exists.
func Search(query string) (string, bool) {
	lower := strings.ToLower(query)

	for term, answer := range propertyTypeAnswers {
		if strings.Contains(lower, term) {
			return answer, true
		}
	}

	if strings.Contains(lower, "baño") || strings.Contains(lower, "bathroom") {
		if strings.Contains(lower, "ducha") || strings.Contains(lower, "shower") {
			return "Un baño sin ducha se considera medio baño. Para nuestro registro, cuenta como 0.5 baños. Si solo tiene inodoro y lavamanos, es un medio baño.", true
		}
		return "Contamos baños completos (con ducha/bañera) y medios baños (solo inodoro y lavamanos). Ambos son importantes para la descripción de la propiedad.", true
	}

	if strings.Contains(lower, "precio") || strings.Contains(lower, "valor") || strings.Contains(lower, "cuesta") {
		return "El precio depende de muchos factores: ubicación, área, estado, características especiales. Te ayudo a establecer un precio competitivo basado en la información que me proporciones.", true
	}

	return "", false
}

// IsQuestion reports whether a message reads as a question rather than
// an answer to the current prompt. Heuristic only.
func IsQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, indicator := range questionIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
