package auth

import (
	"time"

	"github.com/polkiloo/ticketing/internal/domain/model"
)

type Strategy interface {
	IssueToken(identity model.Identity) (string, error)
	ParseToken(token string) (model.Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
