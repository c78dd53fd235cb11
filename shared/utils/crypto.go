package utils

import (
	"errors"
	"net/http"

	internal_errors "github.com/itchan-dev/bbs/shared/errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a board password for storage.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Password is too long", StatusCode: http.StatusBadRequest}
		}
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash exactly.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
