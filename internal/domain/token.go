package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"
	"time"
)

const (
	VerificationCodeTTL = 10 * time.Minute

	minVerificationCode = 100000
	maxVerificationCode = 999999
)

// VerificationCode is a single-use numeric code bound to a user's email.
// Only Hash is persisted.
type VerificationCode struct {
	Plaintext string
	Hash      []byte
	Email     string
	Expiry    time.Time
}

func GenerateVerificationCode(random io.Reader, email string, now time.Time, ttl time.Duration) (*VerificationCode, error) {
	if random == nil {
		random = rand.Reader
	}

	n, err := rand.Int(random, big.NewInt(maxVerificationCode-minVerificationCode+1))
	if err != nil {
		return nil, err
	}

	plaintext := fmt.Sprintf("%06d", n.Int64()+minVerificationCode)

	return &VerificationCode{
		Plaintext: plaintext,
		Hash:      HashVerificationCode(plaintext),
		Email:     email,
		Expiry:    now.Add(ttl),
	}, nil
}

func HashVerificationCode(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}
