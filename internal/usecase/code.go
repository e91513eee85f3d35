package usecase

import (
	"encoding/base32"
	"fmt"

	"github.com/google/uuid"
)

const (
	orderCodePrefix = "ORD-"
	orderCodeLength = 12
)

// CodeGenerator produces candidate order codes.
type CodeGenerator func() (string, error)

// NewOrderCode returns ORD- followed by 12 random base32 characters.
func NewOrderCode() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate order code: %w", err)
	}
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(id[:])
	return orderCodePrefix + encoded[:orderCodeLength], nil
}
