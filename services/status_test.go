package services

import (
	"testing"

	"SiDispo/models"
)

func TestClassifyKnownStatuses(t *testing.T) {
	cases := []struct {
		status   models.DisposisiStatus
		label    string
		severity Severity
	}{
		{models.StatusBelumDibaca, "Belum Dibaca", SeverityDanger},
		{models.StatusDibaca, "Dibaca", SeverityWarning},
		{models.StatusDiterima, "Diterima", SeverityInfo},
		{models.StatusDiproses, "Sedang Diproses", SeverityWarning},
		{models.StatusSelesai, "Selesai", SeveritySuccess},
		{models.StatusDiteruskan, "Diteruskan", SeverityNeutral},
	}

	for _, tc := range cases {
		badge := Classify(tc.status)
		if badge.Label != tc.label {
			t.Errorf("Classify(%q).Label = %q, want %q", tc.status, badge.Label, tc.label)
		}
		if badge.Severity != tc.severity {
			t.Errorf("Classify(%q).Severity = %q, want %q", tc.status, badge.Severity, tc.severity)
		}
	}
}

func TestClassifyUnknownFallsBackToBelumDibaca(t *testing.T) {
	fallback := Classify(models.StatusBelumDibaca)

	for _, status := range []models.DisposisiStatus{"", "archived", "DITERIMA", "selesai ", "belum_dibaca"} {
		badge := Classify(status)
		if badge != fallback {
			t.Errorf("Classify(%q) = %+v, want fallback %+v", status, badge, fallback)
		}
	}
}
