package services

import (
	"SiDispo/models"
)

// DisposisiGate menentukan aksi apa yang sah untuk sebuah disposisi
// dilihat dari role aktor. Satu gate terparametris menggantikan duplikasi
// predikat per-role: tiap tier membaca/menulis kolom statusnya sendiri
// (kabid/sekretaris -> status_dari_kabid, staff -> status_dari_bawahan).
type DisposisiGate struct {
	role models.Role
}

func NewDisposisiGate(role models.Role) *DisposisiGate {
	return &DisposisiGate{role: role}
}

func (g *DisposisiGate) Role() models.Role { return g.role }

// TierStatus mengambil nilai kolom status milik tier aktor.
// Role tanpa kolom status (admin, kepala) mengembalikan string kosong.
func (g *DisposisiGate) TierStatus(d *models.Disposisi) models.DisposisiStatus {
	if d == nil {
		return ""
	}
	switch g.role {
	case models.RoleKabid, models.RoleSekretaris:
		return d.StatusDariKabid
	case models.RoleStaff:
		return d.StatusDariBawahan
	default:
		return ""
	}
}

// CanAccept - terima hanya dari keadaan "dibaca", dan tidak pernah
// ditawarkan lagi setelah tier ini terima atau teruskan.
func (g *DisposisiGate) CanAccept(d *models.Disposisi) bool {
	tier := g.TierStatus(d)
	if tier == "" {
		// belum pernah dibuka di tier ini; tidak ada aksi apa pun
		return false
	}
	if tier == models.StatusDiterima || tier == models.StatusDiteruskan {
		return false
	}
	return d.Status == models.StatusDibaca
}

// CanForward - meneruskan hanya setelah eksplisit diterima, dan hanya
// untuk tier atasan. Penerusan bersifat terminal untuk tier tersebut.
func (g *DisposisiGate) CanForward(d *models.Disposisi) bool {
	if !g.role.IsAtasanRole() {
		return false
	}
	return g.TierStatus(d) == models.StatusDiterima
}

// CanGiveFeedback - satu pengiriman feedback per aktor per disposisi
// sampai diedit; butuh tier diterima, atau status umum sudah diproses.
func (g *DisposisiGate) CanGiveFeedback(d *models.Disposisi, hasFeedback bool) bool {
	if hasFeedback {
		return false
	}
	tier := g.TierStatus(d)
	if tier == "" {
		return false
	}
	return tier == models.StatusDiterima || d.Status == models.StatusDiproses
}

// CanEditFeedback - edit hanya untuk feedback yang sudah pernah
// dikirim aktor ini.
func (g *DisposisiGate) CanEditFeedback(hasFeedback bool) bool {
	return hasFeedback
}
