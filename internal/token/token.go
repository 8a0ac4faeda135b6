// Package token issues and verifies the stateless bearer tokens used for
// session auth. Tokens are self-contained: identity and role travel in the
// claims, so no server-side session store exists and invalidation happens
// only through expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
)

// Claims is the identity bundle carried by a verified token.
type Claims struct {
	UserID primitive.ObjectID
	Role   models.Role
}

// Issue signs a token binding userID and role for the given lifetime.
func Issue(userID primitive.ObjectID, role models.Role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"role":   string(role),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify checks signature and expiry and extracts the identity claims.
// Expired tokens return ErrExpired; every other failure, including a role
// or userId claim that does not parse, returns ErrInvalid.
func Verify(raw, secret string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalid
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalid
	}

	rawUserID, _ := mapClaims["userId"].(string)
	userID, err := primitive.ObjectIDFromHex(rawUserID)
	if err != nil {
		return Claims{}, ErrInvalid
	}

	rawRole, _ := mapClaims["role"].(string)
	role := models.Role(rawRole)
	if !role.Valid() {
		return Claims{}, ErrInvalid
	}

	return Claims{UserID: userID, Role: role}, nil
}
