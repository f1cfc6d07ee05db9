package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of an access token the client looks at
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseClaims reads an access token without verifying its signature. The
// server remains the authority; the client only uses expiry and email hints.
func ParseClaims(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}
	c := Claims{Subject: tc.Subject, Email: tc.Email}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	if c.Email == "" && strings.Contains(c.Subject, "@") {
		c.Email = c.Subject
	}
	return c, nil
}
