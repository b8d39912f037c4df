package listing_test

import (
	"testing"

	"github.com/vendetucasa/intake/internal/listing"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"573001112233", "573001112233"},
		{"3001112233", "573001112233"},
		{"573001112233@c.us", "573001112233"},
		{"+57 300 111 2233", "573001112233"},
		{"300-111-2233", "573001112233"},
	}

	for _, tc := range cases {
		if got := listing.NormalizePhone(tc.input); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	if !listing.ValidPhone("3001112233") {
		t.Error("ValidPhone(3001112233) = false, want true")
	}
	if listing.ValidPhone("12345") {
		t.Error("ValidPhone(12345) = true, want false")
	}
}

func TestNew_InitialState(t *testing.T) {
	l := listing.New(listing.CreateCommand{
		Client: listing.Client{
			FirstName: "Ana",
			Phone:     "3001112233",
			City:      "Medellín",
			Address:   "Carrera 43A # 18-95",
		},
	})

	if l.Process.Mode != listing.ModeCollecting {
		t.Errorf("New() mode = %s, want %s", l.Process.Mode, listing.ModeCollecting)
	}
	if l.Client.Phone != "573001112233" {
		t.Errorf("New() phone = %s, want normalized 573001112233", l.Client.Phone)
	}
	if l.ID.String() == "" {
		t.Error("New() did not assign an id")
	}
	if len(l.Process.CompletedFields) != 0 {
		t.Errorf("New() completed fields = %v, want empty", l.Process.CompletedFields)
	}
}

func TestMarkFieldCompleted_NoDuplicates(t *testing.T) {
	l := listing.New(listing.CreateCommand{Client: listing.Client{Phone: "3001112233"}})

	l.MarkFieldCompleted("area_m2")
	l.MarkFieldCompleted("area_m2")

	if len(l.Process.CompletedFields) != 1 {
		t.Errorf("CompletedFields = %v, want single entry", l.Process.CompletedFields)
	}
}

func TestComplete_SetsTerminalState(t *testing.T) {
	l := listing.New(listing.CreateCommand{Client: listing.Client{Phone: "3001112233"}})

	l.Complete()

	if l.Process.Mode != listing.ModeCompleted {
		t.Errorf("Complete() mode = %s, want %s", l.Process.Mode, listing.ModeCompleted)
	}
	if l.Process.CompletedAt == nil {
		t.Error("Complete() did not set CompletedAt")
	}
}
