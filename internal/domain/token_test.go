package domain

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationCode(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	for range 50 {
		code, err := GenerateVerificationCode(nil, "a@b.com", now, VerificationCodeTTL)
		require.NoError(t, err)

		require.Len(t, code.Plaintext, 6)
		n, err := strconv.Atoi(code.Plaintext)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, minVerificationCode)
		assert.LessOrEqual(t, n, maxVerificationCode)

		assert.Equal(t, HashVerificationCode(code.Plaintext), code.Hash)
		assert.Equal(t, now.Add(10*time.Minute), code.Expiry)
		assert.Equal(t, "a@b.com", code.Email)
	}
}

func TestGenerateVerificationCodeDeterministicSource(t *testing.T) {
	source := bytes.NewReader(make([]byte, 64))

	code, err := GenerateVerificationCode(source, "a@b.com", time.Now(), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "100000", code.Plaintext)
}

func TestGenerateVerificationCodeSourceFailure(t *testing.T) {
	_, err := GenerateVerificationCode(bytes.NewReader(nil), "a@b.com", time.Now(), time.Minute)
	assert.Error(t, err)
}

func TestHashVerificationCode(t *testing.T) {
	assert.Equal(t, HashVerificationCode("123456"), HashVerificationCode("123456"))
	assert.NotEqual(t, HashVerificationCode("123456"), HashVerificationCode("123457"))
	assert.Len(t, HashVerificationCode("123456"), 32)
}
