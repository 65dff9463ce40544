package services

import (
	"errors"

	"SiDispo/models"

	"gorm.io/gorm"
)

var (
	ErrUnauthorized = errors.New("unauthorized: user not authenticated")
	ErrForbidden    = errors.New("forbidden: insufficient permissions")
	ErrNotFound     = errors.New("resource not found")
)

type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// CanUserCatatSurat - Cek izin mencatat surat masuk
func (ps *PermissionService) CanUserCatatSurat(user *models.User) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	return user.IsSekretaris() || user.IsAdmin(), nil
}

// CanUserDeleteSurat - Hapus surat hanya dari daftar admin, dan hanya
// jika belum ada disposisi yang menempel.
func (ps *PermissionService) CanUserDeleteSurat(user *models.User, surat *models.SuratMasuk) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if surat == nil {
		return false, ErrNotFound
	}
	if !user.IsAdmin() {
		return false, nil
	}

	var n int64
	if err := ps.db.Model(&models.Disposisi{}).Where("surat_masuk_id = ?", surat.IDSurat).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}

// CanUserCreateDisposisi - Hanya Kepala yang menurunkan disposisi
func (ps *PermissionService) CanUserCreateDisposisi(user *models.User, surat *models.SuratMasuk) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if surat == nil {
		return false, ErrNotFound
	}
	return user.IsKepala(), nil
}

// CanUserViewDisposisi - Cek siapa boleh membuka detail disposisi
func (ps *PermissionService) CanUserViewDisposisi(user *models.User, d *models.Disposisi) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if d == nil {
		return false, ErrNotFound
	}

	// 1. Admin & Kepala lihat semua
	if user.IsAdmin() || user.IsKepala() {
		return true, nil
	}

	// 2. Tier atasan: disposisi yang dialamatkan ke jabatannya atau dirinya
	if user.IsAtasan() {
		if d.DisposisiKepadaUserID != nil && *d.DisposisiKepadaUserID == user.ID {
			return true, nil
		}
		return d.DisposisiKepadaJabatan == user.Jabatan, nil
	}

	// 3. Staff: hanya disposisi yang diteruskan kepadanya
	if user.IsStaff() {
		return d.DiteruskanKe(user.ID), nil
	}

	return false, nil
}

// CanUserEditFeedback - Feedback hanya boleh diedit pemiliknya
func (ps *PermissionService) CanUserEditFeedback(user *models.User, fb *models.FeedbackDisposisi) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if fb == nil {
		return false, ErrNotFound
	}
	return fb.UserID == user.ID, nil
}

// GetDisposisiByID - Helper fetch disposisi
func (ps *PermissionService) GetDisposisiByID(id string) (*models.Disposisi, error) {
	var d models.Disposisi
	err := ps.db.
		Preload("SuratMasuk").
		Preload("SuratMasuk.Foto").
		Preload("DariUser").
		First(&d, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetSuratByID - Helper fetch surat masuk
func (ps *PermissionService) GetSuratByID(id uint) (*models.SuratMasuk, error) {
	var surat models.SuratMasuk
	err := ps.db.
		Preload("Foto").
		Preload("DicatatOleh").
		First(&surat, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &surat, nil
}

// HasUserFeedback - Apakah aktor ini sudah pernah mengirim feedback
// untuk disposisi tersebut (menentukan has_feedback di response).
func (ps *PermissionService) HasUserFeedback(userID uint, disposisiID string) (bool, error) {
	var n int64
	err := ps.db.Model(&models.FeedbackDisposisi{}).
		Where("disposisi_id = ? AND user_id = ?", disposisiID, userID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
