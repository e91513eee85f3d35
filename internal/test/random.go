package test

import (
	"math/rand/v2"
	"strings"

	"github.com/polkiloo/ticketing/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	length := minLen + rand.IntN(maxLen-minLen+1)

	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(asciiLetters[rand.IntN(len(asciiLetters))])
	}
	return b.String()
}

// RandomBuyerID returns a distinct-looking buyer identifier.
func RandomBuyerID() string {
	return "buyer-" + RandomASCIIString(8, 12)
}

// RandomMember returns a member identity with a random buyer id.
func RandomMember() model.Identity {
	return model.Identity{ID: RandomBuyerID(), Role: model.RoleMember}
}
