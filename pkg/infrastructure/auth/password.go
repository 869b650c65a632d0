// Package auth provides the credential primitives the domain depends on:
// bcrypt password hashing and JWT bearer tokens.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
)

type bcryptPasswordManager struct {
	cost int
}

func NewPasswordManager() model.PasswordManager {
	return &bcryptPasswordManager{cost: bcrypt.DefaultCost}
}

func (m *bcryptPasswordManager) Hash(plainTextPassword string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), m.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (m *bcryptPasswordManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainTextPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
