package conversation

import "github.com/vendetucasa/intake/internal/catalog"

// Progress summarizes how far a listing's field collection has
// advanced. The percentage is computed over the fields applicable to
// the current property type, so changing the type can move it in
// either direction.
type Progress struct {
	Percent     int      `json:"percent"`
	CurrentStep string   `json:"current_step,omitempty"`
	Missing     []string `json:"missing_fields"`
}

// Snapshot computes the progress of a field map.
func Snapshot(fields catalog.Fields) Progress {
	missing := catalog.Missing(fields)
	p := Progress{
		Percent: catalog.Progress(fields),
		Missing: missing,
	}
	if len(missing) > 0 {
		p.CurrentStep = missing[0]
	}
	return p
}

// currentPrompt returns the question for the next missing field, or an
// empty string when collection is finished.
func currentPrompt(fields catalog.Fields) string {
	missing := catalog.Missing(fields)
	if len(missing) == 0 {
		return ""
	}
	def, ok := catalog.Lookup(missing[0])
	if !ok {
		return ""
	}
	return def.Prompt
}
