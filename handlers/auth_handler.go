package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/mail"
	"net/url"
	"os"
	"strings"
	"time"

	"SiDispo/config"
	"SiDispo/dto"
	"SiDispo/models"
	"SiDispo/utils"
	"SiDispo/utils/mailer"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

func toUserSummary(u models.User) dto.UserSummary {
	return dto.UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Jabatan:   u.Jabatan,
		Bidang:    u.Bidang,
	}
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return utils.BadRequest(c, "email dan password harus diisi", nil)
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Jangan bocorkan apakah email terdaftar
		return utils.Unauthorized(c, "email atau password salah")
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return utils.Unauthorized(c, "email atau password salah")
	}

	accessToken, accessClaims, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.InternalServerError(c, "failed to generate access token")
	}

	refreshToken, refreshClaims, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return utils.InternalServerError(c, "failed to generate refresh token")
	}

	row := models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: refreshClaims.ExpiresAt.Time,
	}
	if err := h.db.Create(&row).Error; err != nil {
		return utils.InternalServerError(c, "failed to persist refresh token")
	}

	resp := dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    accessClaims.ExpiresAt.Time,
		User:         toUserSummary(user),
	}

	return utils.OK(c, "login berhasil", resp)
}

// Refresh - POST /api/auth/refresh (rotasi refresh token)
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}

	claims, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return utils.Unauthorized(c, "invalid refresh token")
	}

	var stored models.RefreshToken
	if err := h.db.Where("token = ?", req.RefreshToken).First(&stored).Error; err != nil {
		return utils.Unauthorized(c, "refresh token not recognized")
	}

	if time.Now().After(stored.ExpiresAt) {
		h.db.Delete(&stored)
		return utils.Unauthorized(c, "refresh token expired")
	}

	var user models.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		return utils.Unauthorized(c, "user no longer exists")
	}

	accessToken, accessClaims, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.InternalServerError(c, "failed to generate access token")
	}

	newRefresh, refreshClaims, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return utils.InternalServerError(c, "failed to generate refresh token")
	}

	// Rotasi: token lama hangus begitu dipakai
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&stored).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			Token:     newRefresh,
			UserID:    user.ID,
			ExpiresAt: refreshClaims.ExpiresAt.Time,
		}).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to rotate refresh token")
	}

	return utils.OK(c, "token refreshed", dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "Bearer",
		ExpiresAt:    accessClaims.ExpiresAt.Time,
	})
}

// Logout - POST /api/auth/logout (hapus refresh token aktif)
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}

	h.db.Where("token = ?", req.RefreshToken).Delete(&models.RefreshToken{})
	return utils.OK(c, "logout berhasil", nil)
}

func RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email is required"})
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email format"})
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"message": "If the email exists, a reset link has been sent"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	rawToken, tokenHash, err := generateResetToken()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate token"})
	}

	resetToken := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(models.PasswordResetTokenTTL),
	}

	if err := config.DB.Create(&resetToken).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resetLink := buildResetLink(rawToken)
	emailCfg := config.LoadEmailConfig()
	mailClient := mailer.NewClient(emailCfg)
	if err := mailClient.SendPasswordResetEmail(user.Email, resetLink); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "If the email exists, a reset link has been sent"})
}

func ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetSubmission
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}

	if strings.TrimSpace(req.Token) == "" {
		return utils.BadRequest(c, "token is required", nil)
	}
	if len(req.Password) < 8 {
		return utils.BadRequest(c, "password minimal 8 karakter", nil)
	}
	if req.Password != req.ConfirmPassword {
		return utils.BadRequest(c, "konfirmasi password tidak cocok", nil)
	}

	sum := sha256.Sum256([]byte(strings.TrimSpace(req.Token)))
	tokenHash := hex.EncodeToString(sum[:])

	var resetToken models.PasswordResetToken
	if err := config.DB.Where("token_hash = ?", tokenHash).First(&resetToken).Error; err != nil {
		return utils.BadRequest(c, "token tidak valid", nil)
	}

	newHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.InternalServerError(c, "failed to hash password")
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := resetToken.Consume(tx, time.Now()); err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", resetToken.UserID).
			Update("password_hash", newHash).Error; err != nil {
			return err
		}

		// Sesi lama ikut hangus
		return tx.Where("user_id = ?", resetToken.UserID).
			Delete(&models.RefreshToken{}).Error
	})
	if err != nil {
		if err == models.ErrPasswordResetTokenExpired || err == models.ErrPasswordResetTokenUsed {
			return utils.BadRequest(c, "token sudah kedaluwarsa atau terpakai", nil)
		}
		return utils.InternalServerError(c, "failed to reset password")
	}

	return utils.OK(c, "password berhasil direset", nil)
}

func generateResetToken() (string, string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", err
	}
	raw := hex.EncodeToString(tokenBytes)
	sum := sha256.Sum256([]byte(raw))
	return raw, hex.EncodeToString(sum[:]), nil
}

func buildResetLink(token string) string {
	base := os.Getenv("PASSWORD_RESET_URL")
	if base == "" {
		base = "/auth/reset-password"
	}

	escapedToken := url.QueryEscape(token)
	if strings.Contains(base, "?") {
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			return base + "token=" + escapedToken
		}
		return base + "&token=" + escapedToken
	}
	return base + "?token=" + escapedToken
}
