package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisposisiStatus string

const (
	StatusBelumDibaca DisposisiStatus = "belum dibaca"
	StatusDibaca      DisposisiStatus = "dibaca"
	StatusDiterima    DisposisiStatus = "diterima"
	StatusDiproses    DisposisiStatus = "diproses"
	StatusSelesai     DisposisiStatus = "selesai"
	StatusDiteruskan  DisposisiStatus = "diteruskan"
)

func (s DisposisiStatus) IsValid() bool {
	switch s {
	case StatusBelumDibaca, StatusDibaca, StatusDiterima, StatusDiproses, StatusSelesai, StatusDiteruskan:
		return true
	default:
		return false
	}
}

// Disposisi - instruksi dari Kepala atas sebuah surat masuk.
//
// Tiga kolom status berjalan independen per tier:
//   - Status            : status umum yang dilihat semua role
//   - StatusDariKabid   : status di tier atasan (kabid/sekretaris)
//   - StatusDariBawahan : status di tier staff (terisi setelah diteruskan)
type Disposisi struct {
	ID string `gorm:"type:char(36);primaryKey"`

	SuratMasukID uint        `gorm:"not null;index"`
	SuratMasuk   *SuratMasuk `gorm:"foreignkey:SuratMasukID,references:IDSurat"`

	DariUserID uint  `gorm:"not null;index"` // Kepala
	DariUser   *User `gorm:"foreignkey:DariUserID,references:ID"`

	DisposisiKepadaUserID  *uint  `gorm:"index"`
	DisposisiKepadaJabatan string `gorm:"type:varchar(150);index"`

	Status            DisposisiStatus `gorm:"type:varchar(20);default:'belum dibaca';not null;index"`
	StatusDariKabid   DisposisiStatus `gorm:"type:varchar(20);index"`
	StatusDariBawahan DisposisiStatus `gorm:"type:varchar(20);index"`

	// Target penerusan, terisi hanya setelah aksi teruskan
	DiteruskanKepadaUserID  *uint  `gorm:"index"`
	DiteruskanKepadaNama    string `gorm:"type:varchar(200)"`
	DiteruskanKepadaJabatan string `gorm:"type:varchar(150)"`

	// Field instruksi, immutable setelah dibuat Kepala
	Catatan           string `gorm:"type:text"`
	CatatanAtasan     string `gorm:"type:text"`
	DenganHormatHarap string `gorm:"type:text"`
	Sifat             Sifat  `gorm:"type:enum('biasa','segera','penting');default:'biasa';not null"`

	// Key objek S3 lembar disposisi (PDF), di-generate sistem eksternal
	LembarPath string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Disposisi) TableName() string {
	return "disposisi"
}

// Generate UUID sebelum disimpan
func (d *Disposisi) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return
}

func (d *Disposisi) SudahDiteruskan() bool {
	return d.DiteruskanKepadaUserID != nil
}

func (d *Disposisi) DiteruskanKe(userID uint) bool {
	return d.DiteruskanKepadaUserID != nil && *d.DiteruskanKepadaUserID == userID
}
