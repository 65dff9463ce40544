package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"SiDispo/config"
	"SiDispo/middleware"
	"SiDispo/models"
	"SiDispo/utils"

	"github.com/gofiber/fiber/v2"
)

// WebAdminHandler - Handler untuk admin web panel
type WebAdminHandler struct {
	templates map[string]*template.Template
}

// PageData - Data untuk template
type PageData struct {
	Title      string
	Active     string
	User       *models.User
	Error      string
	Success    string
	Email      string
	Form       UserFormData
	Errors     map[string]string
	Users      []models.User
	Query      string
	RoleFilter string
	Page       int
	TotalPages int
	Pages      []int
	Stats      DashboardStats
}

type UserFormData struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      string
	Jabatan   string
	Bidang    string
	AtasanID  string
}

type DashboardStats struct {
	TotalUsers     int64
	TotalStaff     int64
	TotalAtasan    int64
	TotalSurat     int64
	TotalDisposisi int64
	DisposisiAktif int64
}

// NewWebAdminHandler - Constructor
func NewWebAdminHandler() *WebAdminHandler {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"subtract": func(a, b int) int {
			return a - b
		},
		"eq": func(a, b interface{}) bool {
			return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
		},
	}

	templates := make(map[string]*template.Template)
	layoutFile := "templates/layouts/base.html"

	// Parse each page template with the base layout
	pages := map[string]string{
		"login":        "templates/admin/login.html",
		"dashboard":    "templates/admin/dashboard.html",
		"users_list":   "templates/admin/users/list.html",
		"users_create": "templates/admin/users/create.html",
	}

	for name, pageFile := range pages {
		t := template.Must(template.New(filepath.Base(layoutFile)).Funcs(funcMap).ParseFiles(layoutFile, pageFile))
		templates[name] = t
	}

	return &WebAdminHandler{
		templates: templates,
	}
}

// Helper untuk render template
func (h *WebAdminHandler) render(c *fiber.Ctx, templateName string, data PageData) error {
	t, ok := h.templates[templateName]
	if !ok {
		log.Printf("Template not found: %s", templateName)
		return c.Status(500).SendString("Template not found: " + templateName)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Printf("Template error: %v", err)
		return c.Status(500).SendString("Template error: " + err.Error())
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

// =====================
// AUTH HANDLERS
// =====================

// ShowLoginPage - GET /admin/login
func (h *WebAdminHandler) ShowLoginPage(c *fiber.Ctx) error {
	// Cek jika sudah login
	sess, _ := middleware.AdminSessionStore.Get(c)
	if sess.Get(middleware.SessionAdminIDKey) != nil {
		return c.Redirect("/admin")
	}

	return h.render(c, "login", PageData{
		Title:  "Login",
		Error:  c.Query("error"),
		Active: "login",
	})
}

// HandleLogin - POST /admin/login
func (h *WebAdminHandler) HandleLogin(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		return h.render(c, "login", PageData{
			Title:  "Login",
			Error:  "Email dan password harus diisi",
			Email:  email,
			Active: "login",
		})
	}

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return h.render(c, "login", PageData{
			Title:  "Login",
			Error:  "Email atau password salah",
			Email:  email,
			Active: "login",
		})
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return h.render(c, "login", PageData{
			Title:  "Login",
			Error:  "Email atau password salah",
			Email:  email,
			Active: "login",
		})
	}

	// Hanya admin yang boleh masuk panel
	if !user.IsAdmin() {
		return h.render(c, "login", PageData{
			Title:  "Login",
			Error:  "Akun ini bukan admin",
			Email:  email,
			Active: "login",
		})
	}

	sess, err := middleware.AdminSessionStore.Get(c)
	if err != nil {
		return h.render(c, "login", PageData{
			Title:  "Login",
			Error:  "Gagal membuat session",
			Email:  email,
			Active: "login",
		})
	}

	sess.Set(middleware.SessionAdminIDKey, user.ID)
	sess.Set(middleware.SessionAdminRoleKey, string(user.Role))
	if err := sess.Save(); err != nil {
		return h.render(c, "login", PageData{
			Title:  "Login",
			Error:  "Gagal menyimpan session",
			Email:  email,
			Active: "login",
		})
	}

	return c.Redirect("/admin")
}

// HandleLogout - POST /admin/logout
func (h *WebAdminHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := middleware.AdminSessionStore.Get(c)
	if err == nil {
		sess.Destroy()
	}
	return c.Redirect("/admin/login")
}

// =====================
// DASHBOARD
// =====================

// ShowDashboard - GET /admin
func (h *WebAdminHandler) ShowDashboard(c *fiber.Ctx) error {
	admin, err := middleware.GetAdminFromSession(c)
	if err != nil {
		return c.Redirect("/admin/login")
	}

	var stats DashboardStats
	config.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleStaff).Count(&stats.TotalStaff)
	config.DB.Model(&models.User{}).
		Where("role IN ?", []models.Role{models.RoleKabid, models.RoleSekretaris}).
		Count(&stats.TotalAtasan)
	config.DB.Model(&models.SuratMasuk{}).Count(&stats.TotalSurat)
	config.DB.Model(&models.Disposisi{}).Count(&stats.TotalDisposisi)
	config.DB.Model(&models.Disposisi{}).
		Where("status NOT IN ?", []models.DisposisiStatus{models.StatusSelesai}).
		Count(&stats.DisposisiAktif)

	return h.render(c, "dashboard", PageData{
		Title:  "Dashboard",
		Active: "dashboard",
		User:   admin,
		Stats:  stats,
	})
}

// =====================
// USERS
// =====================

// ShowUsersList - GET /admin/users
func (h *WebAdminHandler) ShowUsersList(c *fiber.Ctx) error {
	admin, err := middleware.GetAdminFromSession(c)
	if err != nil {
		return c.Redirect("/admin/login")
	}

	q := strings.TrimSpace(c.Query("q", ""))
	roleFilter := strings.TrimSpace(c.Query("role", ""))
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := 15
	offset := (page - 1) * limit

	tx := config.DB.Model(&models.User{})
	if roleFilter != "" {
		tx = tx.Where("role = ?", roleFilter)
	}
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where(
			config.DB.Where("username LIKE ?", like).
				Or("email LIKE ?", like).
				Or("first_name LIKE ?", like).
				Or("last_name LIKE ?", like),
		)
	}

	var total int64
	tx.Count(&total)

	var users []models.User
	tx.Order("id DESC").Limit(limit).Offset(offset).Find(&users)

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pages := make([]int, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		pages = append(pages, i)
	}

	return h.render(c, "users_list", PageData{
		Title:      "Kelola User",
		Active:     "users",
		User:       admin,
		Users:      users,
		Query:      q,
		RoleFilter: roleFilter,
		Page:       page,
		TotalPages: totalPages,
		Pages:      pages,
		Success:    c.Query("success"),
		Error:      c.Query("error"),
	})
}

// ShowCreateUser - GET /admin/users/create
func (h *WebAdminHandler) ShowCreateUser(c *fiber.Ctx) error {
	admin, err := middleware.GetAdminFromSession(c)
	if err != nil {
		return c.Redirect("/admin/login")
	}

	return h.render(c, "users_create", PageData{
		Title:  "Tambah User",
		Active: "users",
		User:   admin,
	})
}

// HandleCreateUser - POST /admin/users/create
func (h *WebAdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	admin, err := middleware.GetAdminFromSession(c)
	if err != nil {
		return c.Redirect("/admin/login")
	}

	form := UserFormData{
		Username:  strings.TrimSpace(c.FormValue("username")),
		Email:     strings.TrimSpace(c.FormValue("email")),
		FirstName: strings.TrimSpace(c.FormValue("first_name")),
		LastName:  strings.TrimSpace(c.FormValue("last_name")),
		Role:      strings.TrimSpace(c.FormValue("role")),
		Jabatan:   strings.TrimSpace(c.FormValue("jabatan")),
		Bidang:    strings.TrimSpace(c.FormValue("bidang")),
		AtasanID:  strings.TrimSpace(c.FormValue("atasan_id")),
	}
	password := c.FormValue("password")

	errs := make(map[string]string)
	if form.Username == "" {
		errs["username"] = "Username harus diisi"
	}
	if form.Email == "" {
		errs["email"] = "Email harus diisi"
	}
	if len(password) < 8 {
		errs["password"] = "Password minimal 8 karakter"
	}
	if !models.Role(form.Role).IsValid() {
		errs["role"] = "Role tidak dikenal"
	}

	if len(errs) > 0 {
		return h.render(c, "users_create", PageData{
			Title:  "Tambah User",
			Active: "users",
			User:   admin,
			Form:   form,
			Errors: errs,
		})
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return h.render(c, "users_create", PageData{
			Title:  "Tambah User",
			Active: "users",
			User:   admin,
			Form:   form,
			Error:  "Gagal memproses password",
		})
	}

	newUser := models.User{
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PasswordHash: hash,
		Role:         models.Role(form.Role),
		Jabatan:      form.Jabatan,
		Bidang:       form.Bidang,
	}
	if form.AtasanID != "" {
		if id, err := strconv.Atoi(form.AtasanID); err == nil && id > 0 {
			atasanID := uint(id)
			newUser.AtasanID = &atasanID
		}
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		msg := "Gagal membuat user"
		if utils.IsDuplicateError(err) {
			msg = "Username atau email sudah terpakai"
		}
		return h.render(c, "users_create", PageData{
			Title:  "Tambah User",
			Active: "users",
			User:   admin,
			Form:   form,
			Error:  msg,
		})
	}

	return c.Redirect("/admin/users?success=User+berhasil+dibuat")
}

// HandleDeleteUser - POST /admin/users/:id/delete
func (h *WebAdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	admin, err := middleware.GetAdminFromSession(c)
	if err != nil {
		return c.Redirect("/admin/login")
	}

	id, _ := c.ParamsInt("id")
	if uint(id) == admin.ID {
		return c.Redirect("/admin/users?error=Tidak+bisa+menghapus+akun+sendiri")
	}

	result := config.DB.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil || result.RowsAffected == 0 {
		return c.Redirect("/admin/users?error=User+tidak+ditemukan")
	}

	return c.Redirect("/admin/users?success=User+berhasil+dihapus")
}
