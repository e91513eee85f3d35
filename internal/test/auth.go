package test

import (
	"github.com/polkiloo/ticketing/internal/domain/model"
	pkgAuth "github.com/polkiloo/ticketing/internal/pkg/auth"
)

// StrategyStub implements auth.Strategy with configurable behaviour.
type StrategyStub struct {
	IssueFn func(model.Identity) (string, error)
	ParseFn func(string) (model.Identity, error)
}

// IssueToken returns configured token or default value.
func (s StrategyStub) IssueToken(identity model.Identity) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(identity)
	}
	return "token", nil
}

// ParseToken returns configured identity or a default member.
func (s StrategyStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Identity{ID: "member-1", Role: model.RoleMember}, nil
}

// Name returns strategy identifier.
func (s StrategyStub) Name() string {
	return "stub"
}

// TokenParserStub implements the identity parser used by middleware.
type TokenParserStub struct {
	Identity model.Identity
	Err      error
}

// ParseToken returns configured identity or error.
func (s TokenParserStub) ParseToken(token string) (model.Identity, error) {
	if s.Err != nil {
		return model.Identity{}, s.Err
	}
	return s.Identity, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
