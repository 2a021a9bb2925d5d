package services

import (
	"crypto/subtle"

	"github.com/shashiranjanraj/storefront/config"
)

// GateService checks the shared admin secret. There is no session or
// token state; every mutating request presents the secret again.
type GateService struct{}

func NewGateService() *GateService {
	return &GateService{}
}

// Authenticate reports whether secret matches the configured admin
// password. When no password is configured the gate fails closed:
// nothing authenticates, including the empty string.
func (s *GateService) Authenticate(secret string) bool {
	want := config.AdminPassword()
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(want)) == 1
}
