package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Codes are drawn uniformly from [100000, 999999], so every code is exactly
// six digits with no leading zero.
const (
	low  = 100000
	span = 900000
)

// Generator produces verification codes. The zero value is ready to use; it
// exists so services can swap in a deterministic source in tests.
type Generator struct{}

func (Generator) Generate() (string, error) { return Generate() }

// Generate returns a random 6-digit numeric code from crypto/rand.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(low+n.Int64(), 10), nil
}
