package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const diagnosticsTokenTTL = time.Hour

// DiagnosticsJWT guards the read-only room enumeration endpoint with an
// HMAC-signed bearer token derived from the shared admin secret.
type DiagnosticsJWT struct {
	secret string
}

func NewDiagnosticsJWT(secret string) *DiagnosticsJWT {
	return &DiagnosticsJWT{secret}
}

func (d DiagnosticsJWT) GenerateToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"scope": "diagnostics",
		"exp":   jwt.NewNumericDate(time.Now().Add(diagnosticsTokenTTL)),
	})
	return token.SignedString([]byte(d.secret))
}

func (d DiagnosticsJWT) Verify(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(d.secret), nil
	})
	if err != nil {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return ok && token.Valid && claims["scope"] == "diagnostics"
}
