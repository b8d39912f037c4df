package knowledge_test

import (
	"strings"
	"testing"

	"github.com/vendetucasa/intake/internal/knowledge"
)

func TestSearch_PropertyType(t *testing.T) {
	answer, found := knowledge.Search("¿qué es un lote?")
	if !found {
		t.Fatal("Search() found nothing for lote")
	}
	if !strings.Contains(answer, "terreno") {
		t.Errorf("Search(lote) = %q, want lot definition", answer)
	}
}

func TestSearch_HalfBathroom(t *testing.T) {
	answer, found := knowledge.Search("¿un baño sin ducha cuenta como baño?")
	if !found {
		t.Fatal("Search() found nothing for bathroom question")
	}
	if !strings.Contains(answer, "medio baño") {
		t.Errorf("Search() = %q, want half-bath explanation", answer)
	}
}

func TestSearch_Pricing(t *testing.T) {
	_, found := knowledge.Search("no sé qué precio ponerle")
	if !found {
		t.Error("Search() found nothing for pricing question")
	}
}

func TestSearch_NoMatch(t *testing.T) {
	if _, found := knowledge.Search("hola buenos días"); found {
		t.Error("Search() matched an unrelated message")
	}
}

func TestIsQuestion(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"¿cuántos baños debo reportar?", true},
		{"tiene 3 habitaciones", false},
		{"qué es un certificado de libertad", true},
		{"eso cuenta como baño completo", true},
		{"350 millones", false},
	}

	for _, tc := range cases {
		if got := knowledge.IsQuestion(tc.message); got != tc.want {
			t.Errorf("IsQuestion(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}
