package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"chart-insight-api/internal/interface/api/rest/dto/auth"
	"chart-insight-api/internal/interface/api/rest/dto/user"
)

const (
	minPasswordLen = 5
	maxPasswordLen = 72 // bcrypt safe
)

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}

	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		return 0, errors.New("invalid page")
	}

	return p, nil
}

func IsID(s string) (bool, uint64) {
	id, err := strconv.ParseUint(s, 10, 64)
	return err == nil && id > 0, id
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	return validateCredentials(r.Email, r.Password)
}

func ValidateUser(r user.Request) map[string]string {
	return validateCredentials(r.Email, r.Password)
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	return validateCredentials(r.Email, r.Password)
}

func validateCredentials(email, password string) map[string]string {
	errs := make(map[string]string)

	// Normalize
	email = strings.TrimSpace(email)

	// email (required + format)
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	// password (required + length)
	if strings.TrimSpace(password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 5–72 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
