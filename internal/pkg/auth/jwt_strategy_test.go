package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/ticketing/internal/domain/model"
)

func TestNewJWTStrategy_DefaultTTL(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})

	cases := []struct {
		name     string
		identity model.Identity
		want     model.Identity
	}{
		{"member", model.Identity{ID: "buyer-1", Role: model.RoleMember}, model.Identity{ID: "buyer-1", Role: model.RoleMember}},
		{"admin", model.Identity{ID: "ops", Role: model.RoleAdmin}, model.Identity{ID: "ops", Role: model.RoleAdmin}},
		{"default role", model.Identity{ID: "buyer-2"}, model.Identity{ID: "buyer-2", Role: model.RoleMember}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := strategy.IssueToken(tc.identity)
			if err != nil {
				t.Fatalf("issue token: %v", err)
			}
			got, err := strategy.ParseToken(token)
			if err != nil {
				t.Fatalf("parse token: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestJWTStrategy_IssueRejectsEmptySubject(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.IssueToken(model.Identity{}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseInvalid(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	other := NewJWTStrategy("other-secret", Options{TTL: time.Minute})

	foreign, err := other.IssueToken(model.Identity{ID: "buyer"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	expired := NewJWTStrategy("secret", Options{TTL: time.Minute})
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := expired.IssueToken(model.Identity{ID: "buyer"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	key := DeriveKey("secret", PurposeIdentity)
	sign := func(claims identityClaims, method jwt.SigningMethod) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}
	valid := jwt.RegisteredClaims{
		Subject:   "buyer",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	noSubject := valid
	noSubject.Subject = ""
	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"foreign key", foreign},
		{"expired", stale},
		{"unknown role", sign(identityClaims{Role: "root", RegisteredClaims: valid}, jwt.SigningMethodHS256)},
		{"missing expiry", sign(identityClaims{Role: model.RoleMember, RegisteredClaims: noExpiry}, jwt.SigningMethodHS256)},
		{"missing subject", sign(identityClaims{Role: model.RoleMember, RegisteredClaims: noSubject}, jwt.SigningMethodHS256)},
		{"wrong issuer", sign(identityClaims{Role: model.RoleMember, RegisteredClaims: wrongIssuer}, jwt.SigningMethodHS256)},
		{"other algorithm", sign(identityClaims{Role: model.RoleMember, RegisteredClaims: valid}, jwt.SigningMethodHS512)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := strategy.ParseToken(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
