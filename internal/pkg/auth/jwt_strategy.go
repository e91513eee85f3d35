package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/ticketing/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

const tokenIssuer = "ticketing"

type identityClaims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTStrategy signs identities as HS256 JSON Web Tokens.
type JWTStrategy struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewJWTStrategy builds JWTStrategy with a key derived from secret.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{key: DeriveKey(secret, PurposeIdentity), ttl: ttl, now: time.Now}
}

// IssueToken generates a signed token for identity.
func (s *JWTStrategy) IssueToken(identity model.Identity) (string, error) {
	if identity.ID == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	role := identity.Role
	if role == "" {
		role = model.RoleMember
	}
	now := s.now()
	claims := identityClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// ParseToken validates token and returns the encoded identity.
func (s *JWTStrategy) ParseToken(token string) (model.Identity, error) {
	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return model.Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return model.Identity{}, ErrInvalidToken
	}
	switch claims.Role {
	case model.RoleMember, model.RoleAdmin:
	default:
		return model.Identity{}, ErrInvalidToken
	}
	return model.Identity{ID: claims.Subject, Role: claims.Role}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
