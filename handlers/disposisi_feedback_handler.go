package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	dispodto "SiDispo/dto/disposisi"
	"SiDispo/middleware"
	"SiDispo/models"
	"SiDispo/services"
	"SiDispo/utils"
	"SiDispo/utils/events"
	"SiDispo/utils/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DisposisiFeedbackHandler - siklus feedback: kirim, lihat milik sendiri,
// edit, dan pantauan feedback bawahan.
type DisposisiFeedbackHandler struct {
	db          *gorm.DB
	permService *services.PermissionService
}

func NewDisposisiFeedbackHandler(db *gorm.DB) *DisposisiFeedbackHandler {
	return &DisposisiFeedbackHandler{
		db:          db,
		permService: services.NewPermissionService(db),
	}
}

func presignFeedbackFiles(resp *dispodto.FeedbackResponse) {
	for i := range resp.Files {
		if url, err := storage.GetPresignedURL(resp.Files[i].FilePath); err == nil {
			resp.Files[i].FilePath = url
		}
	}
}

// applyFeedbackCascade - status feedback menggerakkan status disposisi:
// "selesai" menutup disposisi, selain itu tetap "diproses".
func applyFeedbackCascade(tx *gorm.DB, role models.Role, d *models.Disposisi, status models.FeedbackStatus) error {
	if status == models.FeedbackSelesai {
		setTierStatus(role, d, models.StatusSelesai)
		d.Status = models.StatusSelesai
	} else if d.Status != models.StatusSelesai {
		d.Status = models.StatusDiproses
	}
	return tx.Save(d).Error
}

// KirimFeedback - POST /api/disposisi/:role/:id/feedback (multipart)
// Satu feedback per aktor per disposisi; lampiran maksimal 5 file.
func (h *DisposisiFeedbackHandler) KirimFeedback(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	role, err := roleFromPath(c, user)
	if err != nil {
		if err == fiber.ErrForbidden {
			return utils.Forbidden(c, "Role tidak sesuai")
		}
		return utils.NotFound(c, "Not found")
	}

	d, err := h.permService.GetDisposisiByID(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Disposisi tidak ditemukan")
	}

	canView, _ := h.permService.CanUserViewDisposisi(user, d)
	if !canView {
		return utils.Forbidden(c, "Anda tidak berhak atas disposisi ini")
	}

	hasFeedback, _ := h.permService.HasUserFeedback(user.ID, d.ID)
	gate := services.NewDisposisiGate(role)
	if !gate.CanGiveFeedback(d, hasFeedback) {
		if hasFeedback {
			return utils.Conflict(c, "Anda sudah pernah mengirim feedback, gunakan edit")
		}
		return utils.Conflict(c, "Disposisi tidak dalam keadaan bisa diberi feedback")
	}

	var req dispodto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	var fileHeaders []*multipartFile
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["feedback_files"] {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			fileHeaders = append(fileHeaders, &multipartFile{header: fh, ext: ext})
		}
	}
	if len(fileHeaders) > models.MaxFeedbackFiles {
		return utils.BadRequest(c, fmt.Sprintf("Maksimal %d lampiran per feedback", models.MaxFeedbackFiles), nil)
	}

	fb := models.FeedbackDisposisi{
		DisposisiID: d.ID,
		UserID:      user.ID,
		Notes:       strings.TrimSpace(req.Notes),
		Status:      models.FeedbackStatus(req.Status),
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fb).Error; err != nil {
			return err
		}

		for i, f := range fileHeaders {
			key := fmt.Sprintf("feedback/%s_%d_%d%s", fb.ID, time.Now().UnixNano(), i, f.ext)
			uploadedPath, err := storage.UploadFile(c.Context(), f.header, key)
			if err != nil {
				return err
			}
			file := models.FeedbackFile{
				FeedbackID: fb.ID,
				FilePath:   uploadedPath,
				FileName:   f.header.Filename,
			}
			if err := tx.Create(&file).Error; err != nil {
				return err
			}
			fb.Files = append(fb.Files, file)
		}

		return applyFeedbackCascade(tx, role, d, fb.Status)
	})
	if err != nil {
		return utils.InternalServerError(c, "Gagal menyimpan feedback")
	}

	events.DisposisiEventBus <- events.DisposisiEvent{
		Type:      events.FeedbackMasuk,
		Disposisi: *d,
		Actor:     role,
	}

	resp := dispodto.NewFeedbackResponse(&fb)
	presignFeedbackFiles(&resp)
	return utils.Created(c, "Feedback berhasil dikirim", resp)
}

// FeedbackSaya - GET /api/disposisi/:role/feedback/mine
func (h *DisposisiFeedbackHandler) FeedbackSaya(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if _, err := roleFromPath(c, user); err != nil {
		if err == fiber.ErrForbidden {
			return utils.Forbidden(c, "Role tidak sesuai")
		}
		return utils.NotFound(c, "Not found")
	}

	var list []models.FeedbackDisposisi
	if err := h.db.
		Preload("Files").
		Preload("Disposisi").
		Preload("Disposisi.SuratMasuk").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return utils.InternalServerError(c, "Gagal mengambil feedback")
	}

	responses := dispodto.NewFeedbackResponses(list)
	for i := range responses {
		presignFeedbackFiles(&responses[i])
	}
	return utils.OK(c, "Feedback saya berhasil diambil", responses)
}

// GetFeedback - GET /api/disposisi/:role/feedback/:feedbackId
// Dipakai form edit untuk prefill.
func (h *DisposisiFeedbackHandler) GetFeedback(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if _, err := roleFromPath(c, user); err != nil {
		if err == fiber.ErrForbidden {
			return utils.Forbidden(c, "Role tidak sesuai")
		}
		return utils.NotFound(c, "Not found")
	}

	var fb models.FeedbackDisposisi
	if err := h.db.
		Preload("Files").
		First(&fb, "id = ?", c.Params("feedbackId")).Error; err != nil {
		return utils.NotFound(c, "Feedback tidak ditemukan")
	}

	if fb.UserID != user.ID && !user.IsKepala() && !user.IsAdmin() {
		return utils.Forbidden(c, "Anda tidak berhak melihat feedback ini")
	}

	resp := dispodto.NewFeedbackResponse(&fb)
	presignFeedbackFiles(&resp)
	return utils.OK(c, "Feedback berhasil diambil", resp)
}

// UpdateFeedback - PUT /api/disposisi/:role/feedback/:feedbackId (multipart)
// Edit notes/status, tambah lampiran baru, hapus lampiran lama.
// Total lampiran setelah edit tetap maksimal 5.
func (h *DisposisiFeedbackHandler) UpdateFeedback(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	role, err := roleFromPath(c, user)
	if err != nil {
		if err == fiber.ErrForbidden {
			return utils.Forbidden(c, "Role tidak sesuai")
		}
		return utils.NotFound(c, "Not found")
	}

	var fb models.FeedbackDisposisi
	if err := h.db.
		Preload("Files").
		First(&fb, "id = ?", c.Params("feedbackId")).Error; err != nil {
		return utils.NotFound(c, "Feedback tidak ditemukan")
	}

	canEdit, _ := h.permService.CanUserEditFeedback(user, &fb)
	if !canEdit {
		return utils.Forbidden(c, "Feedback hanya bisa diedit pemiliknya")
	}

	d, err := h.permService.GetDisposisiByID(fb.DisposisiID)
	if err != nil {
		return utils.NotFound(c, "Disposisi tidak ditemukan")
	}

	var req dispodto.UpdateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	removeSet := make(map[uint]struct{}, len(req.RemoveFileIDs))
	for _, id := range req.RemoveFileIDs {
		removeSet[id] = struct{}{}
	}

	var kept, removed []models.FeedbackFile
	for _, f := range fb.Files {
		if _, ok := removeSet[f.ID]; ok {
			removed = append(removed, f)
		} else {
			kept = append(kept, f)
		}
	}

	var newFiles []*multipartFile
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["new_feedback_files"] {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			newFiles = append(newFiles, &multipartFile{header: fh, ext: ext})
		}
	}

	if len(kept)+len(newFiles) > models.MaxFeedbackFiles {
		return utils.BadRequest(c, fmt.Sprintf("Maksimal %d lampiran per feedback", models.MaxFeedbackFiles), nil)
	}

	fb.Notes = strings.TrimSpace(req.Notes)
	fb.Status = models.FeedbackStatus(req.Status)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		for _, f := range removed {
			if err := tx.Delete(&models.FeedbackFile{}, f.ID).Error; err != nil {
				return err
			}
		}

		for i, f := range newFiles {
			key := fmt.Sprintf("feedback/%s_%d_%d%s", fb.ID, time.Now().UnixNano(), i, f.ext)
			uploadedPath, err := storage.UploadFile(c.Context(), f.header, key)
			if err != nil {
				return err
			}
			file := models.FeedbackFile{
				FeedbackID: fb.ID,
				FilePath:   uploadedPath,
				FileName:   f.header.Filename,
			}
			if err := tx.Create(&file).Error; err != nil {
				return err
			}
			kept = append(kept, file)
		}

		if err := tx.Save(&fb).Error; err != nil {
			return err
		}

		return applyFeedbackCascade(tx, role, d, fb.Status)
	})
	if err != nil {
		return utils.InternalServerError(c, "Gagal memperbarui feedback")
	}
	fb.Files = kept

	// Objek S3 lampiran yang dihapus dibersihkan setelah commit
	for _, f := range removed {
		_ = storage.DeleteFile(c.Context(), f.FilePath)
	}

	events.DisposisiEventBus <- events.DisposisiEvent{
		Type:      events.FeedbackMasuk,
		Disposisi: *d,
		Actor:     role,
	}

	resp := dispodto.NewFeedbackResponse(&fb)
	presignFeedbackFiles(&resp)
	return utils.OK(c, "Feedback berhasil diperbarui", resp)
}

// FeedbackBawahan - GET /api/disposisi/:role/:id/feedback-bawahan
// Atasan memantau feedback yang masuk dari staff untuk disposisi ini.
// Daftar kosong dibalas 200, bukan 404.
func (h *DisposisiFeedbackHandler) FeedbackBawahan(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if _, err := roleFromPath(c, user); err != nil {
		if err == fiber.ErrForbidden {
			return utils.Forbidden(c, "Role tidak sesuai")
		}
		return utils.NotFound(c, "Not found")
	}

	d, err := h.permService.GetDisposisiByID(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Disposisi tidak ditemukan")
	}

	canView, _ := h.permService.CanUserViewDisposisi(user, d)
	if !canView {
		return utils.Forbidden(c, "Anda tidak berhak atas disposisi ini")
	}

	var list []models.FeedbackDisposisi
	if err := h.db.
		Preload("Files").
		Preload("User").
		Where("disposisi_id = ? AND user_id <> ?", d.ID, user.ID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return utils.InternalServerError(c, "Gagal mengambil feedback bawahan")
	}

	responses := dispodto.NewFeedbackResponses(list)
	for i := range responses {
		presignFeedbackFiles(&responses[i])
	}
	return utils.OK(c, "Feedback bawahan berhasil diambil", responses)
}
