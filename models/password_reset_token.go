package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPasswordResetTokenExpired = errors.New("token reset password sudah kedaluwarsa")
	ErrPasswordResetTokenUsed    = errors.New("token reset password sudah pernah dipakai")
)

// PasswordResetTokenTTL - masa berlaku link reset yang dikirim lewat email
const PasswordResetTokenTTL = time.Hour

// PasswordResetToken - token sekali pakai untuk reset password.
// Yang disimpan hanya hash SHA-256 dari token; token mentahnya cuma
// ada di link email.
type PasswordResetToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index"`
	TokenHash string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	UsedAt    *time.Time

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t PasswordResetToken) IsExpired(now time.Time) bool {
	if now.IsZero() {
		now = time.Now()
	}
	return !now.Before(t.ExpiresAt)
}

// Validate - cek token masih bisa dipakai tanpa mengubah apa pun
func (t PasswordResetToken) Validate(now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}
	if t.Used {
		return ErrPasswordResetTokenUsed
	}
	if t.IsExpired(now) {
		return ErrPasswordResetTokenExpired
	}
	return nil
}

// Consume - tandai token terpakai, atomik di dalam transaksi pemanggil.
// UPDATE-nya bersyarat (belum used, belum kedaluwarsa) supaya dua
// request reset yang balapan tidak bisa sama-sama lolos.
func (t *PasswordResetToken) Consume(tx *gorm.DB, now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}

	if err := t.Validate(now); err != nil {
		return err
	}

	usedAt := now
	res := tx.Model(&PasswordResetToken{}).
		Where("id = ? AND used = ? AND expires_at > ?", t.ID, false, now).
		Updates(map[string]any{
			"used":    true,
			"used_at": &usedAt,
		})
	if res.Error != nil {
		return res.Error
	}

	// Nol baris berarti request lain sudah keburu memakai token ini
	// (atau kedaluwarsa persis di antara Validate dan UPDATE).
	if res.RowsAffected == 0 {
		var latest PasswordResetToken
		err := tx.First(&latest, t.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrPasswordResetTokenUsed
		case err != nil:
			return err
		case latest.IsExpired(now) && !latest.Used:
			return ErrPasswordResetTokenExpired
		default:
			return ErrPasswordResetTokenUsed
		}
	}

	t.Used = true
	t.UsedAt = &usedAt
	return nil
}
