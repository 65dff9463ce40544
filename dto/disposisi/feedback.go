package disposisi

import (
	"strings"

	"SiDispo/models"
)

// FeedbackRequest - bagian field teks dari pengiriman feedback multipart.
// Lampiran dibaca handler langsung dari form ("feedback_files").
type FeedbackRequest struct {
	Notes  string `json:"notes" form:"notes"`
	Status string `json:"status" form:"status"`
}

func (r *FeedbackRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Notes) == "" {
		errors["notes"] = "notes is required"
	}
	if !models.FeedbackStatus(r.Status).IsValid() {
		errors["status"] = "status must be diproses or selesai"
	}

	return errors
}

// UpdateFeedbackRequest - edit feedback: notes/status baru, lampiran baru
// ("new_feedback_files"), dan id lampiran lama yang dihapus.
type UpdateFeedbackRequest struct {
	Notes         string `json:"notes" form:"notes"`
	Status        string `json:"status" form:"status"`
	RemoveFileIDs []uint `json:"remove_file_ids" form:"remove_file_ids"`
}

func (r *UpdateFeedbackRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Notes) == "" {
		errors["notes"] = "notes is required"
	}
	if !models.FeedbackStatus(r.Status).IsValid() {
		errors["status"] = "status must be diproses or selesai"
	}

	return errors
}
