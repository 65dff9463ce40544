package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxFeedbackFiles - batas keras lampiran per pengiriman feedback.
// Dipotong di sisi client SEBELUM request dibangun, bukan sekadar
// validasi server.
const MaxFeedbackFiles = 5

type FeedbackStatus string

const (
	FeedbackDiproses FeedbackStatus = "diproses"
	FeedbackSelesai  FeedbackStatus = "selesai"
)

func (s FeedbackStatus) IsValid() bool {
	switch s {
	case FeedbackDiproses, FeedbackSelesai:
		return true
	default:
		return false
	}
}

// FeedbackDisposisi - laporan tindak lanjut dari penerima disposisi.
// Selalu milik tepat satu Disposisi; satu entri per user sampai diedit.
type FeedbackDisposisi struct {
	ID string `gorm:"type:char(36);primaryKey"`

	DisposisiID string     `gorm:"type:char(36);not null;index"`
	Disposisi   *Disposisi `gorm:"foreignkey:DisposisiID,references:ID"`

	UserID uint  `gorm:"not null;index"`
	User   *User `gorm:"foreignkey:UserID,references:ID"`

	Notes  string         `gorm:"type:text;not null"`
	Status FeedbackStatus `gorm:"type:enum('diproses','selesai');not null"`

	Files []FeedbackFile `gorm:"foreignKey:FeedbackID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FeedbackDisposisi) TableName() string {
	return "feedback_disposisi"
}

// Generate UUID sebelum disimpan
func (f *FeedbackDisposisi) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return
}

type FeedbackFile struct {
	ID         uint   `gorm:"primaryKey;autoIncrement:true"`
	FeedbackID string `gorm:"type:char(36);not null;index"`
	FilePath   string `gorm:"type:varchar(255);not null"`
	FileName   string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
}

func (FeedbackFile) TableName() string {
	return "feedback_files"
}
