package auth

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Key purposes derived from the shared service secret.
const (
	PurposeIdentity = "identity-token"
	PurposeVoucher  = "voucher-signature"
)

const derivedKeyLength = 32

// DeriveKey expands secret into an independent key for purpose.
func DeriveKey(secret, purpose string) []byte {
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte("ticketing/"+purpose))
	key := make([]byte, derivedKeyLength)
	if _, err := io.ReadFull(reader, key); err != nil {
		// hkdf only fails past 255 hash blocks of output.
		panic(err)
	}
	return key
}
