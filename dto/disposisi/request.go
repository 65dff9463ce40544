package disposisi

import (
	"strings"

	"SiDispo/models"
)

// CreateDisposisiRequest - Kepala menurunkan disposisi atas surat masuk
type CreateDisposisiRequest struct {
	SuratMasukID           uint   `json:"surat_masuk_id" form:"surat_masuk_id"`
	DisposisiKepadaUserID  *uint  `json:"disposisi_kepada_user_id" form:"disposisi_kepada_user_id"`
	DisposisiKepadaJabatan string `json:"disposisi_kepada_jabatan" form:"disposisi_kepada_jabatan"`
	Catatan                string `json:"catatan" form:"catatan"`
	DenganHormatHarap      string `json:"dengan_hormat_harap" form:"dengan_hormat_harap"`
	Sifat                  string `json:"sifat" form:"sifat"`
}

func (r *CreateDisposisiRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.SuratMasukID == 0 {
		errors["surat_masuk_id"] = "surat_masuk_id is required"
	}
	if strings.TrimSpace(r.DisposisiKepadaJabatan) == "" {
		errors["disposisi_kepada_jabatan"] = "disposisi_kepada_jabatan is required"
	}
	if r.Sifat != "" && !models.Sifat(r.Sifat).IsValid() {
		errors["sifat"] = "sifat must be biasa, segera, or penting"
	}

	return errors
}

func (r *CreateDisposisiRequest) ToModel(kepalaID uint) models.Disposisi {
	sifat := models.SifatBiasa
	if r.Sifat != "" {
		sifat = models.Sifat(r.Sifat)
	}

	return models.Disposisi{
		SuratMasukID:           r.SuratMasukID,
		DariUserID:             kepalaID,
		DisposisiKepadaUserID:  r.DisposisiKepadaUserID,
		DisposisiKepadaJabatan: strings.TrimSpace(r.DisposisiKepadaJabatan),
		Status:                 models.StatusBelumDibaca,
		StatusDariKabid:        models.StatusBelumDibaca,
		Catatan:                strings.TrimSpace(r.Catatan),
		DenganHormatHarap:      strings.TrimSpace(r.DenganHormatHarap),
		Sifat:                  sifat,
	}
}

// ForwardDisposisiRequest - payload aksi teruskan dari tier atasan.
// Nama field adalah kontrak wire, jangan diubah.
type ForwardDisposisiRequest struct {
	DiteruskanKepadaUserID uint   `json:"diteruskan_kepada_user_id" form:"diteruskan_kepada_user_id"`
	CatatanAtasan          string `json:"catatan_atasan" form:"catatan_atasan"`
}

func (r *ForwardDisposisiRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.DiteruskanKepadaUserID == 0 {
		errors["diteruskan_kepada_user_id"] = "diteruskan_kepada_user_id is required"
	}
	return errors
}
