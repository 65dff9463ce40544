package services

import (
	"testing"

	"SiDispo/models"
)

func disposisiKabid(status, dariKabid models.DisposisiStatus) *models.Disposisi {
	return &models.Disposisi{
		Status:          status,
		StatusDariKabid: dariKabid,
	}
}

func TestCanAcceptOnlyFromDibaca(t *testing.T) {
	gate := NewDisposisiGate(models.RoleKabid)

	if !gate.CanAccept(disposisiKabid(models.StatusDibaca, models.StatusDibaca)) {
		t.Error("expected CanAccept=true for status=dibaca, status_dari_kabid=dibaca")
	}

	if gate.CanAccept(disposisiKabid(models.StatusBelumDibaca, models.StatusBelumDibaca)) {
		t.Error("expected CanAccept=false before the record is read")
	}
}

func TestCanAcceptNeverReofferedAfterAcceptOrForward(t *testing.T) {
	gate := NewDisposisiGate(models.RoleKabid)

	// Apapun nilai status umum, tier yang sudah diterima/diteruskan
	// tidak boleh ditawari terima lagi.
	allStatuses := []models.DisposisiStatus{
		models.StatusBelumDibaca, models.StatusDibaca, models.StatusDiterima,
		models.StatusDiproses, models.StatusSelesai, models.StatusDiteruskan,
	}
	for _, base := range allStatuses {
		if gate.CanAccept(disposisiKabid(base, models.StatusDiterima)) {
			t.Errorf("CanAccept=true with status=%q, status_dari_kabid=diterima", base)
		}
		if gate.CanAccept(disposisiKabid(base, models.StatusDiteruskan)) {
			t.Errorf("CanAccept=true with status=%q, status_dari_kabid=diteruskan", base)
		}
	}
}

func TestCanForwardIffTierDiterima(t *testing.T) {
	gate := NewDisposisiGate(models.RoleKabid)

	for _, tier := range []models.DisposisiStatus{
		"", models.StatusBelumDibaca, models.StatusDibaca,
		models.StatusDiproses, models.StatusSelesai, models.StatusDiteruskan,
	} {
		if gate.CanForward(disposisiKabid(models.StatusDibaca, tier)) {
			t.Errorf("CanForward=true for status_dari_kabid=%q", tier)
		}
	}

	if !gate.CanForward(disposisiKabid(models.StatusDibaca, models.StatusDiterima)) {
		t.Error("expected CanForward=true for status_dari_kabid=diterima")
	}
}

func TestStaffCannotForward(t *testing.T) {
	gate := NewDisposisiGate(models.RoleStaff)

	d := &models.Disposisi{
		Status:            models.StatusDiproses,
		StatusDariBawahan: models.StatusDiterima,
	}
	if gate.CanForward(d) {
		t.Error("staff tier must never be offered forward")
	}
}

func TestCanGiveFeedback(t *testing.T) {
	gate := NewDisposisiGate(models.RoleKabid)

	if !gate.CanGiveFeedback(disposisiKabid(models.StatusDibaca, models.StatusDiterima), false) {
		t.Error("expected feedback offered when tier diterima and none submitted")
	}
	if !gate.CanGiveFeedback(disposisiKabid(models.StatusDiproses, models.StatusDibaca), false) {
		t.Error("expected feedback offered when status umum diproses")
	}
	if gate.CanGiveFeedback(disposisiKabid(models.StatusDibaca, models.StatusDibaca), false) {
		t.Error("expected no feedback before accept / diproses")
	}
}

func TestHasFeedbackBlocksResubmission(t *testing.T) {
	gate := NewDisposisiGate(models.RoleKabid)

	// has_feedback=true menutup pengiriman baru berapa pun statusnya
	for _, tier := range []models.DisposisiStatus{models.StatusDiterima, models.StatusDiproses, models.StatusSelesai} {
		if gate.CanGiveFeedback(disposisiKabid(models.StatusDiproses, tier), true) {
			t.Errorf("CanGiveFeedback=true with has_feedback=true, tier=%q", tier)
		}
	}

	if !gate.CanEditFeedback(true) {
		t.Error("expected CanEditFeedback=true once feedback exists")
	}
	if gate.CanEditFeedback(false) {
		t.Error("expected CanEditFeedback=false with no feedback")
	}
}

func TestEmptyTierFieldDisablesEverything(t *testing.T) {
	gate := NewDisposisiGate(models.RoleKabid)

	// Kolom status tier kosong = record belum pernah dibuka di tier ini;
	// tidak ada satu aksi pun yang ditawarkan.
	d := disposisiKabid(models.StatusDibaca, "")
	if gate.CanAccept(d) || gate.CanForward(d) || gate.CanGiveFeedback(d, false) {
		t.Error("expected all predicates false for empty tier status")
	}
}

func TestRoleWithoutTierFieldGetsNoActions(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleKepala} {
		gate := NewDisposisiGate(role)
		d := &models.Disposisi{
			Status:            models.StatusDibaca,
			StatusDariKabid:   models.StatusDiterima,
			StatusDariBawahan: models.StatusDiterima,
		}
		if gate.CanAccept(d) || gate.CanForward(d) || gate.CanGiveFeedback(d, false) {
			t.Errorf("role %q must not be offered tier actions", role)
		}
	}
}

func TestStaffTierUsesStatusDariBawahan(t *testing.T) {
	gate := NewDisposisiGate(models.RoleStaff)

	d := &models.Disposisi{
		Status:            models.StatusDibaca,
		StatusDariKabid:   models.StatusDiteruskan,
		StatusDariBawahan: models.StatusDibaca,
	}
	if got := gate.TierStatus(d); got != models.StatusDibaca {
		t.Fatalf("TierStatus = %q, want %q", got, models.StatusDibaca)
	}
	if !gate.CanAccept(d) {
		t.Error("expected staff CanAccept=true from its own tier field")
	}
}
