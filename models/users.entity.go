package models

import "gorm.io/gorm"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleKepala     Role = "kepala"
	RoleSekretaris Role = "sekretaris"
	RoleKabid      Role = "kabid"
	RoleStaff      Role = "staff"
)

type User struct {
	gorm.Model
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	FirstName    string `gorm:"type:varchar(100)"`
	LastName     string `gorm:"type:varchar(100)"`
	Email        string `gorm:"type:varchar(191);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         Role   `gorm:"type:enum('admin','kepala','sekretaris','kabid','staff');not null;index"`
	Jabatan      string `gorm:"type:varchar(150)"`
	Bidang       string `gorm:"type:varchar(150);index"`

	// AtasanID menunjuk kabid/sekretaris yang membawahi user ini.
	// Dipakai untuk list-bawahan saat meneruskan disposisi.
	AtasanID *uint `gorm:"index"`
	Atasan   *User `gorm:"foreignkey:AtasanID"`
}

func (User) TableName() string {
	return "users"
}

// --- Helper Methods ---

func (u *User) IsKepala() bool     { return u.Role == RoleKepala }
func (u *User) IsSekretaris() bool { return u.Role == RoleSekretaris }
func (u *User) IsKabid() bool      { return u.Role == RoleKabid }
func (u *User) IsStaff() bool      { return u.Role == RoleStaff }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }

// IsAtasan - tier penerima pertama disposisi (boleh terima/teruskan)
func (u *User) IsAtasan() bool {
	return u.Role == RoleKabid || u.Role == RoleSekretaris
}

func (u *User) NamaLengkap() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleKepala, RoleSekretaris, RoleKabid, RoleStaff:
		return true
	default:
		return false
	}
}

// IsAtasanRole - versi Role-level dari User.IsAtasan, dipakai gate & middleware
func (r Role) IsAtasanRole() bool {
	return r == RoleKabid || r == RoleSekretaris
}
