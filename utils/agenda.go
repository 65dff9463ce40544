package utils

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// GenerateNomorAgenda generates the next agenda number for surat masuk.
// It uses row-level locking (FOR UPDATE) to prevent race conditions when
// multiple sekretaris record letters simultaneously.
//
// Features:
// - Yearly reset (filtered by YEAR(created_at))
// - Race condition protection via FOR UPDATE
//
// Returns empty string if there's an error, caller should check error.
func GenerateNomorAgenda(tx *gorm.DB) (string, error) {
	var lastSeq int
	currentYear := time.Now().Year()

	// Use raw SQL with FOR UPDATE to lock rows and prevent race conditions
	// COALESCE handles the case when table is empty (returns 0)
	// Filter nomor_agenda != '' to exclude rows that never got a number
	err := tx.Raw(`
		SELECT COALESCE(MAX(CAST(nomor_agenda AS UNSIGNED)), 0)
		FROM surat_masuk
		WHERE YEAR(created_at) = ? AND nomor_agenda != ''
		FOR UPDATE
	`, currentYear).Scan(&lastSeq).Error

	if err != nil {
		return "", err
	}

	return strconv.Itoa(lastSeq + 1), nil
}
