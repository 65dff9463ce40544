package models

import (
	"time"
)

type Sifat string

const (
	SifatBiasa   Sifat = "biasa"
	SifatSegera  Sifat = "segera"
	SifatPenting Sifat = "penting"
)

func (s Sifat) IsValid() bool {
	switch s {
	case SifatBiasa, SifatSegera, SifatPenting:
		return true
	default:
		return false
	}
}

type SuratMasuk struct {
	IDSurat     uint   `gorm:"primaryKey;autoIncrement:true"`
	NomorSurat  string `gorm:"type:varchar(100);index"`
	NomorAgenda string `gorm:"type:varchar(100);index"`
	Pengirim    string `gorm:"type:varchar(200);index"`
	Perihal     string `gorm:"type:varchar(255);index"`
	IsiRingkas  string `gorm:"type:text"`

	Sifat Sifat `gorm:"type:enum('biasa','segera','penting');default:'biasa';not null;index"`

	TanggalSurat    *time.Time `gorm:"type:date"`
	TanggalDiterima *time.Time `gorm:"type:date;index"`

	Foto []SuratMasukFoto `gorm:"foreignKey:SuratMasukID"`

	// relation
	DicatatOlehID *uint `gorm:"index"` // Sekretaris / Admin
	DicatatOleh   *User `gorm:"foreignkey:DicatatOlehID,references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SuratMasuk) TableName() string {
	return "surat_masuk"
}

// SuratMasukFoto - lampiran foto/scan surat, disimpan di S3 (key di FilePath)
type SuratMasukFoto struct {
	ID           uint   `gorm:"primaryKey;autoIncrement:true"`
	SuratMasukID uint   `gorm:"not null;index"`
	FilePath     string `gorm:"type:varchar(255);not null"`
	FileName     string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
}

func (SuratMasukFoto) TableName() string {
	return "surat_masuk_foto"
}
