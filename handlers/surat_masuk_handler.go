package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	dispodto "SiDispo/dto/disposisi"
	suratdto "SiDispo/dto/surat"
	"SiDispo/middleware"
	"SiDispo/models"
	"SiDispo/services"
	"SiDispo/utils"
	"SiDispo/utils/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SuratMasukHandler struct {
	db          *gorm.DB
	permService *services.PermissionService
}

func NewSuratMasukHandler(db *gorm.DB) *SuratMasukHandler {
	return &SuratMasukHandler{
		db:          db,
		permService: services.NewPermissionService(db),
	}
}

func isAllowedSuratExt(ext string) bool {
	switch ext {
	case ".pdf", ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// presignFoto - tukar key S3 dengan presigned URL untuk response
func presignFoto(resp *dispodto.SuratMasukResponse) {
	for i := range resp.Foto {
		if url, err := storage.GetPresignedURL(resp.Foto[i].FilePath); err == nil {
			resp.Foto[i].FilePath = url
		}
	}
}

// CreateSuratMasuk - Sekretaris/Admin mencatat surat masuk baru
func (h *SuratMasukHandler) CreateSuratMasuk(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	// 1. Parsing Form Data (DTO)
	var req suratdto.CreateSuratMasukRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}

	// 2. Validasi Input
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	// 3. Cek Permission
	canCreate, _ := h.permService.CanUserCatatSurat(user)
	if !canCreate {
		return utils.Forbidden(c, "Anda tidak memiliki izin mencatat surat masuk")
	}

	// 4. Kumpulkan lampiran foto/scan (opsional, bisa lebih dari satu)
	var fotoHeaders []*multipartFile
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["foto"] {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			if !isAllowedSuratExt(ext) {
				return utils.BadRequest(c, "Format lampiran harus PDF atau Gambar", nil)
			}
			fotoHeaders = append(fotoHeaders, &multipartFile{header: fh, ext: ext})
		}
	}

	surat := req.ToModel(user.ID)

	// 5. Simpan dalam transaksi: nomor agenda + surat + foto
	err = h.db.Transaction(func(tx *gorm.DB) error {
		nomorAgenda, err := utils.GenerateNomorAgenda(tx)
		if err != nil {
			return err
		}
		surat.NomorAgenda = nomorAgenda

		if err := tx.Create(&surat).Error; err != nil {
			return err
		}

		for _, f := range fotoHeaders {
			key := fmt.Sprintf("surat/%d_%d%s", surat.IDSurat, time.Now().UnixNano(), f.ext)
			uploadedPath, err := storage.UploadFile(c.Context(), f.header, key)
			if err != nil {
				return err
			}
			foto := models.SuratMasukFoto{
				SuratMasukID: surat.IDSurat,
				FilePath:     uploadedPath,
				FileName:     f.header.Filename,
			}
			if err := tx.Create(&foto).Error; err != nil {
				return err
			}
			surat.Foto = append(surat.Foto, foto)
		}

		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Gagal mencatat surat masuk")
	}

	resp := dispodto.NewSuratMasukResponse(&surat)
	presignFoto(&resp)
	return utils.Created(c, "Surat masuk berhasil dicatat", resp)
}

type multipartFile struct {
	header *multipart.FileHeader
	ext    string
}

// UpdateSuratMasuk - edit metadata surat; foto tambahan opsional
func (h *SuratMasukHandler) UpdateSuratMasuk(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	suratID, _ := c.ParamsInt("id")
	surat, err := h.permService.GetSuratByID(uint(suratID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	canEdit, _ := h.permService.CanUserCatatSurat(user)
	if !canEdit {
		return utils.Forbidden(c, "Anda tidak berhak mengedit surat ini")
	}

	var req suratdto.UpdateSuratMasukRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "Validasi gagal", errMap)
	}

	suratdto.ApplyUpdate(surat, &req)

	// Foto tambahan (optional)
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["foto"] {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			if !isAllowedSuratExt(ext) {
				return utils.BadRequest(c, "Format lampiran harus PDF atau Gambar", nil)
			}
			key := fmt.Sprintf("surat/%d_%d%s", surat.IDSurat, time.Now().UnixNano(), ext)
			uploadedPath, err := storage.UploadFile(c.Context(), fh, key)
			if err != nil {
				return utils.InternalServerError(c, "Gagal mengupload lampiran")
			}
			foto := models.SuratMasukFoto{
				SuratMasukID: surat.IDSurat,
				FilePath:     uploadedPath,
				FileName:     fh.Filename,
			}
			if err := h.db.Create(&foto).Error; err != nil {
				return utils.InternalServerError(c, "Gagal menyimpan lampiran")
			}
			surat.Foto = append(surat.Foto, foto)
		}
	}

	if err := h.db.Save(surat).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memperbarui surat masuk")
	}

	resp := dispodto.NewSuratMasukResponse(surat)
	presignFoto(&resp)
	return utils.OK(c, "Surat masuk berhasil diperbarui", resp)
}

// ListSuratMasuk - daftar surat dengan pencarian sederhana
func (h *SuratMasukHandler) ListSuratMasuk(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	q := strings.TrimSpace(c.Query("q", ""))
	sifat := strings.TrimSpace(c.Query("sifat", ""))

	tx := h.db.Model(&models.SuratMasuk{}).Preload("Foto")
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where(
			h.db.Where("pengirim LIKE ?", like).
				Or("perihal LIKE ?", like).
				Or("nomor_surat LIKE ?", like),
		)
	}
	if sifat != "" {
		tx = tx.Where("sifat = ?", sifat)
	}

	var suratList []models.SuratMasuk
	if err := tx.Order("created_at DESC").Find(&suratList).Error; err != nil {
		return utils.InternalServerError(c, "Gagal mengambil daftar surat")
	}

	responses := make([]dispodto.SuratMasukResponse, 0, len(suratList))
	for i := range suratList {
		resp := dispodto.NewSuratMasukResponse(&suratList[i])
		presignFoto(&resp)
		responses = append(responses, resp)
	}

	return utils.OK(c, "Daftar surat masuk berhasil diambil", responses)
}

// GetSuratMasuk - detail satu surat
func (h *SuratMasukHandler) GetSuratMasuk(c *fiber.Ctx) error {
	if _, err := middleware.GetUserFromContext(c); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	suratID, _ := c.ParamsInt("id")
	surat, err := h.permService.GetSuratByID(uint(suratID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	resp := dispodto.NewSuratMasukResponse(surat)
	presignFoto(&resp)
	return utils.OK(c, "Detail surat berhasil diambil", resp)
}

// DeleteSuratMasuk - hanya admin, dan hanya jika belum ada disposisi
func (h *SuratMasukHandler) DeleteSuratMasuk(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	suratID, _ := c.ParamsInt("id")
	surat, err := h.permService.GetSuratByID(uint(suratID))
	if err != nil {
		return utils.NotFound(c, "Surat tidak ditemukan")
	}

	canDelete, _ := h.permService.CanUserDeleteSurat(user, surat)
	if !canDelete {
		return utils.Forbidden(c, "Surat tidak dapat dihapus")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("surat_masuk_id = ?", surat.IDSurat).
			Delete(&models.SuratMasukFoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SuratMasuk{}, surat.IDSurat).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Gagal menghapus surat")
	}

	// Bersihkan objek S3 setelah commit; kegagalan di sini tidak
	// membatalkan penghapusan record.
	for _, f := range surat.Foto {
		_ = storage.DeleteFile(c.Context(), f.FilePath)
	}

	return utils.OK(c, "Surat berhasil dihapus", nil)
}
