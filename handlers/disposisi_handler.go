package handlers

import (
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

// DisposisiHandler - alur penerima disposisi: baca detail, terima,
// teruskan, unduh lembar PDF. Role di path harus sama dengan role aktor;
// tiap tier hanya menyentuh kolom statusnya sendiri.
type DisposisiHandler struct {
	db          *gorm.DB
	permService *services.PermissionService
}

func NewDisposisiHandler(db *gorm.DB) *DisposisiHandler {
	return &DisposisiHandler{
		db:          db,
		permService: services.NewPermissionService(db),
	}
}

// roleFromPath - cocokkan segmen {role} dengan role aktor dari token
func roleFromPath(c *fiber.Ctx, user *models.User) (models.Role, error) {
	role := models.Role(c.Params("role"))
	if !role.IsValid() {
		return "", fiber.ErrNotFound
	}
	if role != user.Role {
		return "", fiber.ErrForbidden
	}
	return role, nil
}

// setTierStatus - tulis kolom status milik tier aktor
func setTierStatus(role models.Role, d *models.Disposisi, status models.DisposisiStatus) {
	switch {
	case role.IsAtasanRole():
		d.StatusDariKabid = status
	case role == models.RoleStaff:
		d.StatusDariBawahan = status
	}
}

// GetDisposisiDetail - GET /api/disposisi/:role/:id
// Membuka detail menandai terbaca: "belum dibaca" -> "dibaca" pada
// status umum dan kolom tier aktor.
func (h *DisposisiHandler) GetDisposisiDetail(c *fiber.Ctx) error {
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
		return utils.Forbidden(c, "Anda tidak berhak melihat disposisi ini")
	}

	gate := services.NewDisposisiGate(role)

	// Mark-read
	changed := false
	if d.Status == models.StatusBelumDibaca {
		d.Status = models.StatusDibaca
		changed = true
	}
	if gate.TierStatus(d) == models.StatusBelumDibaca {
		setTierStatus(role, d, models.StatusDibaca)
		changed = true
	}
	if changed {
		if err := h.db.Save(d).Error; err != nil {
			return utils.InternalServerError(c, "Gagal memperbarui status baca")
		}
	}

	hasFeedback, _ := h.permService.HasUserFeedback(user.ID, d.ID)

	resp := dispodto.NewDisposisiResponse(d, hasFeedback)
	if resp.SuratMasuk != nil {
		presignFoto(resp.SuratMasuk)
	}
	return utils.OK(c, "Detail disposisi berhasil diambil", resp)
}

// TerimaDisposisi - POST /api/disposisi/:role/:id/terima
// Terima eksplisit: kolom tier -> diterima, status umum -> diproses.
// Pelanggaran keadaan dibalas 409, bukan 400.
func (h *DisposisiHandler) TerimaDisposisi(c *fiber.Ctx) error {
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

	gate := services.NewDisposisiGate(role)
	if !gate.CanAccept(d) {
		return utils.Conflict(c, "Disposisi tidak dalam keadaan bisa diterima")
	}

	oldStatus := d.Status
	setTierStatus(role, d, models.StatusDiterima)
	d.Status = models.StatusDiproses

	if err := h.db.Save(d).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menerima disposisi")
	}

	events.DisposisiEventBus <- events.DisposisiEvent{
		Type:      events.DisposisiStatusMoved,
		Disposisi: *d,
		OldStatus: oldStatus,
		Actor:     role,
	}

	hasFeedback, _ := h.permService.HasUserFeedback(user.ID, d.ID)
	return utils.OK(c, "Disposisi diterima", dispodto.NewDisposisiResponse(d, hasFeedback))
}

// TeruskanDisposisi - POST /api/disposisi/atasan/:role/teruskan/:id
// Hanya tier atasan, hanya setelah diterima. Penerusan bersifat terminal
// untuk tier atasan; kolom bawahan mulai dari "belum dibaca".
func (h *DisposisiHandler) TeruskanDisposisi(c *fiber.Ctx) error {
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

	var req dispodto.ForwardDisposisiRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	d, err := h.permService.GetDisposisiByID(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Disposisi tidak ditemukan")
	}

	canView, _ := h.permService.CanUserViewDisposisi(user, d)
	if !canView {
		return utils.Forbidden(c, "Anda tidak berhak atas disposisi ini")
	}

	gate := services.NewDisposisiGate(role)
	if !gate.CanForward(d) {
		return utils.Conflict(c, "Disposisi belum diterima atau sudah diteruskan")
	}

	var target models.User
	if err := h.db.First(&target, req.DiteruskanKepadaUserID).Error; err != nil {
		return utils.BadRequest(c, "Bawahan tujuan tidak ditemukan", nil)
	}
	if !target.IsStaff() {
		return utils.BadRequest(c, "Tujuan penerusan harus staff", nil)
	}
	if target.AtasanID != nil && *target.AtasanID != user.ID {
		return utils.Forbidden(c, "Staff tersebut bukan bawahan Anda")
	}

	oldStatus := d.Status
	d.DiteruskanKepadaUserID = &target.ID
	d.DiteruskanKepadaNama = target.NamaLengkap()
	d.DiteruskanKepadaJabatan = target.Jabatan
	d.CatatanAtasan = req.CatatanAtasan
	setTierStatus(role, d, models.StatusDiteruskan)
	d.StatusDariBawahan = models.StatusBelumDibaca

	if err := h.db.Save(d).Error; err != nil {
		return utils.InternalServerError(c, "Gagal meneruskan disposisi")
	}

	events.DisposisiEventBus <- events.DisposisiEvent{
		Type:      events.DisposisiStatusMoved,
		Disposisi: *d,
		OldStatus: oldStatus,
		Actor:     role,
	}

	hasFeedback, _ := h.permService.HasUserFeedback(user.ID, d.ID)
	return utils.OK(c, "Disposisi berhasil diteruskan", dispodto.NewDisposisiResponse(d, hasFeedback))
}

// ListBawahan - GET /api/disposisi/atasan/list-bawahan
// Kandidat tujuan teruskan: staff yang atasannya adalah aktor ini.
func (h *DisposisiHandler) ListBawahan(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if !user.IsAtasan() {
		return utils.Forbidden(c, "Hanya untuk tier atasan")
	}

	var bawahan []models.User
	if err := h.db.
		Where("role = ? AND atasan_id = ?", models.RoleStaff, user.ID).
		Order("first_name ASC").
		Find(&bawahan).Error; err != nil {
		return utils.InternalServerError(c, "Gagal mengambil daftar bawahan")
	}

	responses := make([]dispodto.BawahanResponse, 0, len(bawahan))
	for i := range bawahan {
		responses = append(responses, dispodto.BawahanResponse{
			ID:      bawahan[i].ID,
			Nama:    bawahan[i].NamaLengkap(),
			Jabatan: bawahan[i].Jabatan,
		})
	}

	return utils.OK(c, "Daftar bawahan berhasil diambil", responses)
}

// ListDisposisiSaya - GET /api/disposisi/:role/list
// Daftar disposisi yang dialamatkan ke aktor, untuk dashboard per role.
func (h *DisposisiHandler) ListDisposisiSaya(c *fiber.Ctx) error {
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

	tx := h.db.Model(&models.Disposisi{}).
		Preload("SuratMasuk").
		Preload("SuratMasuk.Foto")

	switch {
	case user.IsAtasan():
		tx = tx.Where(
			h.db.Where("disposisi_kepada_user_id = ?", user.ID).
				Or("disposisi_kepada_jabatan = ?", user.Jabatan),
		)
	case user.IsStaff():
		tx = tx.Where("diteruskan_kepada_user_id = ?", user.ID)
	default:
		// kepala/admin pakai endpoint pemantauan
		return utils.Forbidden(c, "Gunakan endpoint list milik Kepala")
	}

	var list []models.Disposisi
	if err := tx.Order("created_at DESC").Find(&list).Error; err != nil {
		return utils.InternalServerError(c, "Gagal mengambil daftar disposisi")
	}

	// has_feedback per baris, satu query
	feedbackSet := make(map[string]struct{})
	var ids []string
	h.db.Model(&models.FeedbackDisposisi{}).
		Where("user_id = ?", user.ID).
		Pluck("disposisi_id", &ids)
	for _, id := range ids {
		feedbackSet[id] = struct{}{}
	}

	responses := make([]dispodto.DisposisiResponse, 0, len(list))
	for i := range list {
		_, hasFeedback := feedbackSet[list[i].ID]
		responses = append(responses, dispodto.NewDisposisiResponse(&list[i], hasFeedback))
	}

	return utils.OK(c, "Daftar disposisi berhasil diambil", responses)
}

// UnduhPDF - GET /api/disposisi/:id/pdf
// Redirect ke presigned URL lembar disposisi di S3.
func (h *DisposisiHandler) UnduhPDF(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	d, err := h.permService.GetDisposisiByID(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Disposisi tidak ditemukan")
	}

	canView, _ := h.permService.CanUserViewDisposisi(user, d)
	if !canView {
		return utils.Forbidden(c, "Anda tidak berhak atas disposisi ini")
	}

	if d.LembarPath == "" {
		return utils.NotFound(c, "Lembar disposisi belum tersedia")
	}

	url, err := storage.GetPresignedURL(d.LembarPath)
	if err != nil {
		return utils.InternalServerError(c, "Gagal menyiapkan tautan unduh")
	}

	return c.Redirect(url, fiber.StatusFound)
}
