package auth

import "golang.org/x/crypto/bcrypt"

// MinBcryptCost is the floor for the hashing cost factor.
const MinBcryptCost = 12

// HashPassword hashes a plaintext password with the given cost. The salt
// is random per call, so the same input never produces the same output.
func HashPassword(password string, cost int) (string, error) {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value. A
// malformed stored hash fails closed: the function reports a mismatch
// instead of surfacing the parse error to the caller.
func ComparePassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
