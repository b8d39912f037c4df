package catalog

import (
	"encoding/json"
	"time"
)

// Attachment is the value stored for a document field once a file has
// been received. A document field counts as complete only when
// Validated is true.
type Attachment struct {
	Validated     bool              `json:"validated"`
	Confidence    int               `json:"confidence"`
	ExtractedInfo map[string]string `json:"extracted_info,omitempty"`
	UploadedAt    time.Time         `json:"uploaded_at"`
	MimeType      string            `json:"mime_type"`
	Filename      string            `json:"filename"`
	StorageKey    string            `json:"storage_key,omitempty"`
}

// AttachmentFrom coerces a field value into an Attachment. Values read
// back from JSON storage arrive as generic maps, so both typed and
// decoded forms are handled.
func AttachmentFrom(v any) (Attachment, bool) {
	switch t := v.(type) {
	case Attachment:
		return t, true
	case *Attachment:
		if t == nil {
			return Attachment{}, false
		}
		return *t, true
	case map[string]any:
		data, err := json.Marshal(t)
		if err != nil {
			return Attachment{}, false
		}
		var att Attachment
		if err := json.Unmarshal(data, &att); err != nil {
			return Attachment{}, false
		}
		return att, true
	default:
		return Attachment{}, false
	}
}
