package surat

import (
	"strings"
	"time"

	"SiDispo/models"
)

func (r *CreateSuratMasukRequest) ToModel(userID uint) models.SuratMasuk {
	// Parse Dates
	var tglSurat, tglDiterima *time.Time
	if r.TanggalSurat != "" {
		if t, err := time.Parse("2006-01-02", r.TanggalSurat); err == nil {
			tglSurat = &t
		}
	}
	if r.TanggalDiterima != "" {
		if t, err := time.Parse("2006-01-02", r.TanggalDiterima); err == nil {
			tglDiterima = &t
		}
	}

	sifat := models.SifatBiasa
	if r.Sifat != "" {
		sifat = models.Sifat(r.Sifat)
	}

	return models.SuratMasuk{
		NomorSurat:      strings.TrimSpace(r.NomorSurat),
		Pengirim:        strings.TrimSpace(r.Pengirim),
		Perihal:         strings.TrimSpace(r.Perihal),
		IsiRingkas:      strings.TrimSpace(r.IsiRingkas),
		Sifat:           sifat,
		TanggalSurat:    tglSurat,
		TanggalDiterima: tglDiterima,
		DicatatOlehID:   &userID,
	}
}

func ApplyUpdate(surat *models.SuratMasuk, req *UpdateSuratMasukRequest) {
	if surat == nil || req == nil {
		return
	}

	if req.NomorSurat != nil {
		surat.NomorSurat = strings.TrimSpace(*req.NomorSurat)
	}
	if req.Pengirim != nil {
		surat.Pengirim = strings.TrimSpace(*req.Pengirim)
	}
	if req.Perihal != nil {
		surat.Perihal = strings.TrimSpace(*req.Perihal)
	}
	if req.IsiRingkas != nil {
		surat.IsiRingkas = strings.TrimSpace(*req.IsiRingkas)
	}
	if req.Sifat != nil {
		surat.Sifat = models.Sifat(*req.Sifat)
	}

	if req.TanggalSurat != nil && *req.TanggalSurat != "" {
		if t, err := time.Parse("2006-01-02", *req.TanggalSurat); err == nil {
			surat.TanggalSurat = &t
		}
	}
	if req.TanggalDiterima != nil && *req.TanggalDiterima != "" {
		if t, err := time.Parse("2006-01-02", *req.TanggalDiterima); err == nil {
			surat.TanggalDiterima = &t
		}
	}
}
