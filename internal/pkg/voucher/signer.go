package voucher

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidPayload = errors.New("invalid voucher payload")

// Signer binds a voucher to its order with an HMAC so scanners can reject forged codes.
type Signer struct {
	key []byte
}

// NewSigner builds Signer with the given key.
func NewSigner(key []byte) *Signer {
	return &Signer{key: key}
}

// Payload returns the text encoded into a voucher's QR code.
func (s *Signer) Payload(orderCode string, voucherID uuid.UUID) string {
	body := fmt.Sprintf("order:%s;voucher:%s", orderCode, voucherID)
	return fmt.Sprintf("%s;signature:%s", body, s.sign(body))
}

// Verify checks payload and returns the order code and voucher it names.
func (s *Signer) Verify(payload string) (string, uuid.UUID, error) {
	body, signature, ok := strings.Cut(payload, ";signature:")
	if !ok || !hmac.Equal([]byte(signature), []byte(s.sign(body))) {
		return "", uuid.Nil, ErrInvalidPayload
	}

	var orderCode, voucherRaw string
	for _, field := range strings.Split(body, ";") {
		key, value, _ := strings.Cut(field, ":")
		switch key {
		case "order":
			orderCode = value
		case "voucher":
			voucherRaw = value
		}
	}
	voucherID, err := uuid.Parse(voucherRaw)
	if err != nil || orderCode == "" {
		return "", uuid.Nil, ErrInvalidPayload
	}
	return orderCode, voucherID, nil
}

func (s *Signer) sign(body string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}
