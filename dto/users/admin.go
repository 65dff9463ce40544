package users

import (
	"net/mail"
	"strings"

	"SiDispo/models"
)

type AdminUserCreateRequest struct {
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      models.Role `json:"role"`
	Jabatan   string      `json:"jabatan"`
	Bidang    string      `json:"bidang"`
	AtasanID  *uint       `json:"atasan_id"`
}

type AdminUserUpdateRequest struct {
	Username  *string      `json:"username"`
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Email     *string      `json:"email"`
	Password  *string      `json:"password"`
	Role      *models.Role `json:"role"`
	Jabatan   *string      `json:"jabatan"`
	Bidang    *string      `json:"bidang"`
	AtasanID  *uint        `json:"atasan_id"`
}

type AdminUserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	Jabatan   string      `json:"jabatan"`
	Bidang    string      `json:"bidang"`
	AtasanID  *uint       `json:"atasan_id"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

func (r *AdminUserCreateRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errors["username"] = "username is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		errors["email"] = "email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errors["email"] = "email is invalid"
	}
	if strings.TrimSpace(r.Password) == "" {
		errors["password"] = "password is required"
	} else if len(r.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}
	if !r.Role.IsValid() {
		errors["role"] = "role must be admin, kepala, sekretaris, kabid, or staff"
	}

	return errors
}

func (r *AdminUserUpdateRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Username != nil && strings.TrimSpace(*r.Username) == "" {
		errors["username"] = "username must not be empty"
	}
	if r.Email != nil {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			errors["email"] = "email is invalid"
		}
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}
	if r.Role != nil && !r.Role.IsValid() {
		errors["role"] = "role must be admin, kepala, sekretaris, kabid, or staff"
	}

	return errors
}

func NewAdminUserResponse(u *models.User) AdminUserResponse {
	if u == nil {
		return AdminUserResponse{}
	}
	return AdminUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Jabatan:   u.Jabatan,
		Bidang:    u.Bidang,
		AtasanID:  u.AtasanID,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
