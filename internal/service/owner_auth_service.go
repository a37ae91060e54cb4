package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// OwnerAuthService checks the single shared owner secret.
type OwnerAuthService interface {
	AttemptLogin(password string) bool
}

type ownerAuthService struct {
	hash []byte
}

// NewOwnerAuthService takes the bcrypt hash of the owner password.
func NewOwnerAuthService(passwordHash string) (OwnerAuthService, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid owner password hash: %w", err)
	}
	return &ownerAuthService{hash: []byte(passwordHash)}, nil
}

// OwnerPasswordHash resolves the configured secret to a bcrypt hash: an
// explicit hash is used as-is, a plaintext password is hashed once.
func OwnerPasswordHash(hash, plaintext string) (string, error) {
	if hash != "" {
		return hash, nil
	}
	if plaintext == "" {
		return "", errors.New("owner password not configured")
	}
	return hashPassword(plaintext)
}

func (s *ownerAuthService) AttemptLogin(password string) bool {
	return checkPasswordHash(password, string(s.hash))
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
