package password

import "golang.org/x/crypto/bcrypt"

// cost is the bcrypt work factor. Changing it only affects new hashes;
// Verify reads the factor embedded in the stored hash.
const cost = 10

// Hash returns the bcrypt hash of a plaintext password.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches the stored bcrypt hash.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
