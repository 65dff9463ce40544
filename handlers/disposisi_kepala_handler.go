package handlers

import (
	"strings"

	dispodto "SiDispo/dto/disposisi"
	"SiDispo/middleware"
	"SiDispo/models"
	"SiDispo/services"
	"SiDispo/utils"
	"SiDispo/utils/events"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DisposisiKepalaHandler - operasi milik Kepala: menurunkan disposisi,
// memantau semuanya, statistik dashboard.
type DisposisiKepalaHandler struct {
	db          *gorm.DB
	permService *services.PermissionService
}

func NewDisposisiKepalaHandler(db *gorm.DB) *DisposisiKepalaHandler {
	return &DisposisiKepalaHandler{
		db:          db,
		permService: services.NewPermissionService(db),
	}
}

// CreateDisposisi - Kepala menurunkan disposisi atas sebuah surat masuk
func (h *DisposisiKepalaHandler) CreateDisposisi(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req dispodto.CreateDisposisiRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}

	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	surat, err := h.permService.GetSuratByID(req.SuratMasukID)
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	canCreate, _ := h.permService.CanUserCreateDisposisi(user, surat)
	if !canCreate {
		return utils.Forbidden(c, "Hanya Kepala yang dapat menurunkan disposisi")
	}

	d := req.ToModel(user.ID)
	if err := h.db.Create(&d).Error; err != nil {
		return utils.InternalServerError(c, "Gagal membuat disposisi")
	}
	d.SuratMasuk = surat

	events.DisposisiEventBus <- events.DisposisiEvent{
		Type:      events.DisposisiCreated,
		Disposisi: d,
		Actor:     user.Role,
	}

	return utils.Created(c, "Disposisi berhasil diturunkan", dispodto.NewDisposisiResponse(&d, false))
}

// ListSemuaDisposisi - Kepala/Admin memantau semua disposisi
func (h *DisposisiKepalaHandler) ListSemuaDisposisi(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if !user.IsKepala() && !user.IsAdmin() {
		return utils.Forbidden(c, "Forbidden")
	}

	status := strings.TrimSpace(c.Query("status", ""))

	tx := h.db.Model(&models.Disposisi{}).
		Preload("SuratMasuk").
		Preload("SuratMasuk.Foto")
	if status != "" {
		if !models.DisposisiStatus(status).IsValid() {
			return utils.BadRequest(c, "status filter tidak dikenal", nil)
		}
		tx = tx.Where("status = ?", status)
	}

	var list []models.Disposisi
	if err := tx.Order("created_at DESC").Find(&list).Error; err != nil {
		return utils.InternalServerError(c, "Gagal mengambil daftar disposisi")
	}

	responses := make([]dispodto.DisposisiResponse, 0, len(list))
	for i := range list {
		responses = append(responses, dispodto.NewDisposisiResponse(&list[i], false))
	}

	return utils.OK(c, "Daftar disposisi berhasil diambil", responses)
}

// GetStatistik - hitungan per status untuk dashboard
func (h *DisposisiKepalaHandler) GetStatistik(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if !user.IsKepala() && !user.IsAdmin() {
		return utils.Forbidden(c, "Forbidden")
	}

	var stats dispodto.StatistikResponse

	type row struct {
		Status models.DisposisiStatus
		N      int64
	}
	var rows []row
	if err := h.db.Model(&models.Disposisi{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menghitung statistik")
	}

	for _, r := range rows {
		stats.Total += r.N
		switch r.Status {
		case models.StatusBelumDibaca:
			stats.BelumDibaca = r.N
		case models.StatusDibaca:
			stats.Dibaca = r.N
		case models.StatusDiterima:
			stats.Diterima = r.N
		case models.StatusDiproses:
			stats.Diproses = r.N
		case models.StatusSelesai:
			stats.Selesai = r.N
		case models.StatusDiteruskan:
			stats.Diteruskan = r.N
		}
	}

	return utils.OK(c, "Statistik disposisi berhasil diambil", stats)
}
