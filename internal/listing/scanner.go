package listing

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vendetucasa/intake/pkg/repository"
)

// Summary is the column-level view of a listing used by the admin list
// endpoint; the full aggregate lives in the record document.
type Summary struct {
	Phone     string    `json:"phone"`
	ID        uuid.UUID `json:"id"`
	Status    Mode      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func scanSummary(s repository.Scanner) (Summary, error) {
	var sm Summary
	err := s.Scan(
		&sm.Phone,
		&sm.ID,
		&sm.Status,
		&sm.CreatedAt,
		&sm.UpdatedAt,
	)
	return sm, err
}

func scanRecord(s repository.Scanner) (Listing, error) {
	var raw []byte
	if err := s.Scan(&raw); err != nil {
		return Listing{}, err
	}

	var l Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return Listing{}, err
	}
	return l, nil
}
