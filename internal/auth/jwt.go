package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teamtask-api/internal/models"
)

var (
	jwtSecret   = []byte(getEnv("JWT_SECRET", "development-insecure-secret-change-me"))
	jwtIssuer   = getEnv("JWT_ISSUER", "teamtask-api")
	jwtAudience = getEnv("JWT_AUDIENCE", "teamtask-clients")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Configure overrides the token settings; called once at startup with the
// loaded configuration. Tests rely on the defaults.
func Configure(secret, issuer, audience string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
	if audience != "" {
		jwtAudience = audience
	}
}

// Claims represents the JWT claims
type Claims struct {
	StaffID uint        `json:"staff_id"`
	Name    string      `json:"name"`
	Role    models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given staff member
func GenerateToken(staffID uint, name string, role models.Role) (string, error) {
	claims := Claims{
		StaffID: staffID,
		Name:    name,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Issuer != jwtIssuer {
		return nil, errors.New("invalid token issuer")
	}
	audValid := false
	for _, aud := range claims.Audience {
		if aud == jwtAudience {
			audValid = true
			break
		}
	}
	if !audValid {
		return nil, errors.New("invalid token audience")
	}
	return claims, nil
}
