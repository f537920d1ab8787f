package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// ConfirmationCodeLength is the number of characters in a booking confirmation code.
	ConfirmationCodeLength = 10

	confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewConfirmationCode returns a random code of ConfirmationCodeLength
// characters drawn uniformly from [A-Z0-9]. Uniqueness is enforced by the
// database, not here.
func NewConfirmationCode() (string, error) {
	max := big.NewInt(int64(len(confirmationAlphabet)))
	code := make([]byte, ConfirmationCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("service.NewConfirmationCode: %w", err)
		}
		code[i] = confirmationAlphabet[n.Int64()]
	}
	return string(code), nil
}
