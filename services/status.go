package services

import (
	"SiDispo/models"
)

type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityNeutral Severity = "neutral"
)

// StatusBadge - deskriptor presentasi sebuah status disposisi
type StatusBadge struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// Classify memetakan status disposisi ke label + severity untuk dashboard.
// Status di luar domain (termasuk string kosong) jatuh ke klasifikasi
// "belum dibaca": status yang tidak dikenal tidak boleh tampil lebih
// "selesai" dari kenyataannya.
func Classify(status models.DisposisiStatus) StatusBadge {
	switch status {
	case models.StatusDibaca:
		return StatusBadge{Label: "Dibaca", Severity: SeverityWarning}
	case models.StatusDiterima:
		return StatusBadge{Label: "Diterima", Severity: SeverityInfo}
	case models.StatusDiproses:
		return StatusBadge{Label: "Sedang Diproses", Severity: SeverityWarning}
	case models.StatusSelesai:
		return StatusBadge{Label: "Selesai", Severity: SeveritySuccess}
	case models.StatusDiteruskan:
		return StatusBadge{Label: "Diteruskan", Severity: SeverityNeutral}
	default:
		return StatusBadge{Label: "Belum Dibaca", Severity: SeverityDanger}
	}
}
