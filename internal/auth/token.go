package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// Identity is the verified caller attached to every mutating request.
type Identity struct {
	UserID       string
	Username     string
	Role         string
	ProfileImage string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// IdentityOf builds the identity of a stored user.
func IdentityOf(user *models.User) Identity {
	return Identity{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
	}
}

type Claims struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_img,omitempty"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for user.
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the identity it carries.
func (t *TokenIssuer) Parse(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, errors.New("empty token")
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid || claims.UserID == "" {
		return Identity{}, errors.New("invalid token")
	}

	return Identity{
		UserID:       claims.UserID,
		Username:     claims.Username,
		Role:         claims.Role,
		ProfileImage: claims.ProfileImage,
	}, nil
}
