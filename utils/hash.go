package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword - bcrypt dengan cost default; hasilnya yang disimpan
// di kolom password_hash
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hashed, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
