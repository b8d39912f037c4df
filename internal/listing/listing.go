// Package listing defines the property listing aggregate collected
// through the intake conversation, plus its PostgreSQL persistence.
package listing

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendetucasa/intake/internal/catalog"
)

// Mode identifies the conversation phase a listing is in.
type Mode string

const (
	// ModeCollecting is the initial phase; fields are gathered one step
	// at a time.
	ModeCollecting Mode = "collecting"

	// ModeAwaitingConfirmation follows once every applicable field is
	// complete; the seller is reviewing the summary.
	ModeAwaitingConfirmation Mode = "awaiting_confirmation"

	// ModeEditing is entered when the seller asks to change something
	// from the confirmation summary.
	ModeEditing Mode = "editing"

	// ModeCompleted is terminal; the listing has been confirmed.
	ModeCompleted Mode = "completed"
)

// Client holds the seller contact details captured by the intake form.
type Client struct {
	FirstName      string `json:"nombre"`
	LastName       string `json:"apellido"`
	DocumentType   string `json:"tipo_documento,omitempty"`
	DocumentNumber string `json:"numero_documento,omitempty"`
	Country        string `json:"pais,omitempty"`
	Phone          string `json:"celular"`
	Email          string `json:"email,omitempty"`
	City           string `json:"ciudad_inmueble"`
	Address        string `json:"direccion_inmueble"`
	RegistryID     string `json:"matricula_inmobiliaria,omitempty"`
}

// ProcessState tracks conversation progress for a listing.
type ProcessState struct {
	Mode            Mode       `json:"mode"`
	CompletedFields []string   `json:"completed_fields"`
	StartedAt       time.Time  `json:"started_at"`
	LastActivityAt  time.Time  `json:"last_activity_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Listing is the aggregate root: one per seller phone number.
type Listing struct {
	ID        uuid.UUID      `json:"id"`
	Client    Client         `json:"client"`
	Fields    catalog.Fields `json:"fields"`
	Process   ProcessState   `json:"process"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateCommand contains the data required to open a new listing from
// an intake form submission.
type CreateCommand struct {
	Client Client
}

// New builds a fresh listing for the given client. The phone number is
// normalized before use as the persistence key.
func New(cmd CreateCommand) *Listing {
	now := time.Now().UTC()
	client := cmd.Client
	client.Phone = NormalizePhone(client.Phone)

	return &Listing{
		ID:     uuid.New(),
		Client: client,
		Fields: catalog.Fields{},
		Process: ProcessState{
			Mode:            ModeCollecting,
			CompletedFields: []string{},
			StartedAt:       now,
			LastActivityAt:  now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records turn activity on the listing.
func (l *Listing) Touch() {
	l.Process.LastActivityAt = time.Now().UTC()
}

// MarkFieldCompleted appends a field to the completed set exactly once.
func (l *Listing) MarkFieldCompleted(key string) {
	for _, k := range l.Process.CompletedFields {
		if k == key {
			return
		}
	}
	l.Process.CompletedFields = append(l.Process.CompletedFields, key)
}

// Complete transitions the listing to its terminal mode.
func (l *Listing) Complete() {
	now := time.Now().UTC()
	l.Process.Mode = ModeCompleted
	l.Process.CompletedAt = &now
	l.Process.LastActivityAt = now
}
