package routes

import (
	"SiDispo/handlers"
	"SiDispo/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Register(app *fiber.App, db *gorm.DB) {
	authHandler := handlers.NewAuthHandler(db)
	suratHandler := handlers.NewSuratMasukHandler(db)
	kepalaHandler := handlers.NewDisposisiKepalaHandler(db)
	dispoHandler := handlers.NewDisposisiHandler(db)
	feedbackHandler := handlers.NewDisposisiFeedbackHandler(db)
	webAdmin := handlers.NewWebAdminHandler()

	api := app.Group("/api")

	// ----- AUTH -----
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/forgot-password", handlers.RequestPasswordReset)
	auth.Post("/reset-password", handlers.ResetPassword)

	// ----- SURAT MASUK -----
	surat := api.Group("/surat-masuk", middleware.RequireAuth())
	surat.Post("/", middleware.RequireRole("sekretaris", "admin"), suratHandler.CreateSuratMasuk)
	surat.Get("/", suratHandler.ListSuratMasuk)
	surat.Get("/:id", suratHandler.GetSuratMasuk)
	surat.Put("/:id", middleware.RequireRole("sekretaris", "admin"), suratHandler.UpdateSuratMasuk)
	surat.Delete("/:id", middleware.RequireAdmin(), suratHandler.DeleteSuratMasuk)

	// ----- DISPOSISI -----
	// Urutan registrasi penting: route berprefix literal harus terdaftar
	// sebelum route wildcard :role/:id.
	dispo := api.Group("/disposisi", middleware.RequireAuth())

	// Kepala
	dispo.Post("/", middleware.RequireKepala(), kepalaHandler.CreateDisposisi)
	dispo.Get("/semua", kepalaHandler.ListSemuaDisposisi)
	dispo.Get("/statistik", kepalaHandler.GetStatistik)

	// Tier atasan
	dispo.Get("/atasan/list-bawahan", middleware.RequireAtasan(), dispoHandler.ListBawahan)
	dispo.Post("/atasan/:role/teruskan/:id", middleware.RequireAtasan(), dispoHandler.TeruskanDisposisi)

	// Lembar disposisi PDF
	dispo.Get("/:id/pdf", dispoHandler.UnduhPDF)

	// Per-role, prefix literal "feedback"
	dispo.Get("/:role/list", middleware.RequirePenerimaDisposisi(), dispoHandler.ListDisposisiSaya)
	dispo.Get("/:role/feedback/mine", middleware.RequirePenerimaDisposisi(), feedbackHandler.FeedbackSaya)
	dispo.Get("/:role/feedback/:feedbackId", middleware.RequirePenerimaDisposisi(), feedbackHandler.GetFeedback)
	dispo.Put("/:role/feedback/:feedbackId", middleware.RequirePenerimaDisposisi(), feedbackHandler.UpdateFeedback)

	// Per-role, per-disposisi
	dispo.Get("/:role/:id/feedback-bawahan", middleware.RequirePenerimaDisposisi(), feedbackHandler.FeedbackBawahan)
	dispo.Post("/:role/:id/feedback", middleware.RequirePenerimaDisposisi(), feedbackHandler.KirimFeedback)
	dispo.Post("/:role/:id/terima", middleware.RequirePenerimaDisposisi(), dispoHandler.TerimaDisposisi)
	dispo.Get("/:role/:id", dispoHandler.GetDisposisiDetail)

	// ----- SETTINGS -----
	settings := api.Group("/settings", middleware.RequireAuth())
	settings.Get("/profile", handlers.GetMyProfile)
	settings.Put("/profile", handlers.UpdateMyProfile)
	settings.Put("/password", handlers.ChangePassword)

	// ----- ADMIN USERS CRUD (JSON API) -----
	admin := api.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	admin.Post("/users", handlers.AdminCreateUser)
	admin.Get("/users", handlers.AdminListUsers) // ?page=&limit=&role=&q=
	admin.Get("/users/:id", handlers.AdminGetUserByID)
	admin.Put("/users/:id", handlers.AdminUpdateUser)
	admin.Delete("/users/:id", handlers.AdminDeleteUser)

	// ----- WEB ADMIN PANEL (session) -----
	app.Get("/admin/login", webAdmin.ShowLoginPage)
	app.Post("/admin/login", webAdmin.HandleLogin)
	app.Post("/admin/logout", webAdmin.HandleLogout)

	panel := app.Group("/admin", middleware.RequireAdminSession())
	panel.Get("/", webAdmin.ShowDashboard)
	panel.Get("/users", webAdmin.ShowUsersList)
	panel.Get("/users/create", webAdmin.ShowCreateUser)
	panel.Post("/users/create", webAdmin.HandleCreateUser)
	panel.Post("/users/:id/delete", webAdmin.HandleDeleteUser)
}
