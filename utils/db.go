package utils

import "strings"

// IsDuplicateError - deteksi pelanggaran unique constraint MySQL (1062)
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "error 1062")
}
