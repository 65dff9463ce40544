package surat

import (
	"strings"

	"SiDispo/models"
)

// CreateSuratMasukRequest - Sekretaris/Admin mencatat surat masuk
type CreateSuratMasukRequest struct {
	NomorSurat      string `json:"nomor_surat" form:"nomor_surat"`
	Pengirim        string `json:"pengirim" form:"pengirim"`
	Perihal         string `json:"perihal" form:"perihal"`
	IsiRingkas      string `json:"isi_ringkas" form:"isi_ringkas"`
	Sifat           string `json:"sifat" form:"sifat"`
	TanggalSurat    string `json:"tanggal_surat" form:"tanggal_surat"`       // YYYY-MM-DD
	TanggalDiterima string `json:"tanggal_diterima" form:"tanggal_diterima"` // YYYY-MM-DD

	// Note: foto di-handle handler dari form "foto"
}

// UpdateSuratMasukRequest - edit metadata surat (hanya field yang dikirim)
type UpdateSuratMasukRequest struct {
	NomorSurat      *string `json:"nomor_surat" form:"nomor_surat"`
	Pengirim        *string `json:"pengirim" form:"pengirim"`
	Perihal         *string `json:"perihal" form:"perihal"`
	IsiRingkas      *string `json:"isi_ringkas" form:"isi_ringkas"`
	Sifat           *string `json:"sifat" form:"sifat"`
	TanggalSurat    *string `json:"tanggal_surat" form:"tanggal_surat"`
	TanggalDiterima *string `json:"tanggal_diterima" form:"tanggal_diterima"`
}

func (r *CreateSuratMasukRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.NomorSurat) == "" {
		errors["nomor_surat"] = "nomor_surat is required"
	}
	if strings.TrimSpace(r.Pengirim) == "" {
		errors["pengirim"] = "pengirim is required"
	}
	if strings.TrimSpace(r.Perihal) == "" {
		errors["perihal"] = "perihal is required"
	}
	if r.Sifat != "" && !isValidSifatString(r.Sifat) {
		errors["sifat"] = "sifat must be biasa, segera, or penting"
	}

	return errors
}

func (r *UpdateSuratMasukRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Sifat != nil && !isValidSifatString(*r.Sifat) {
		errors["sifat"] = "sifat must be biasa, segera, or penting"
	}
	return errors
}

func isValidSifatString(s string) bool {
	return models.Sifat(s).IsValid()
}
