package voucher

import (
	"go.uber.org/fx"

	"github.com/polkiloo/ticketing/internal/config"
	"github.com/polkiloo/ticketing/internal/pkg/auth"
)

// Module provides voucher issuing and signing.
var Module = fx.Provide(
	func() Issuer { return NewUUIDIssuer() },
	func(cfg *config.Config) *Signer {
		return NewSigner(auth.DeriveKey(cfg.AuthSecret, auth.PurposeVoucher))
	},
)
