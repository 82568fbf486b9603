package handlers

import "github.com/nexus/workspace/internal/models"

// AttachmentBody describes an uploaded file. The size label is derived from
// sizeBytes; an id is kept when the attachment already exists.
type AttachmentBody struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required,max=255"`
	Type      string `json:"type" validate:"max=255"`
	SizeBytes uint64 `json:"sizeBytes"`
	URL       string `json:"url" validate:"required"`
}

func attachments(bodies []AttachmentBody) []models.Attachment {
	out := make([]models.Attachment, 0, len(bodies))
	for _, b := range bodies {
		a := models.NewAttachment(b.Name, b.Type, b.SizeBytes, b.URL)
		if b.ID != "" {
			a.ID = b.ID
		}
		out = append(out, a)
	}
	return out
}
