package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StaffClaims identifies an already-authorized staff member. Identity
// management itself lives outside this service; uploads only require a
// token minted with the shared secret.
type StaffClaims struct {
	Name  string `json:"name"`
	Staff bool   `json:"staff"`
	jwt.RegisteredClaims
}

func GenerateStaffToken(secret string, subject string, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := StaffClaims{
		Name:  name,
		Staff: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func ParseStaffToken(tokenStr string, secret string) (*StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*StaffClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
