package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword("ValidPass1!")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "ValidPass1!", hash)
}

func TestHashPassword_Empty(t *testing.T) {
	hash, err := HashPassword("")

	assert.Error(t, err)
	assert.Empty(t, hash)
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	a, err := HashPassword("ValidPass1!")
	require.NoError(t, err)
	b, err := HashPassword("ValidPass1!")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("ValidPass1!")
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "ValidPass1!"))
	assert.Error(t, ComparePassword(hash, "WrongPass1!"))
	assert.Error(t, ComparePassword(hash, ""))
}

func TestValidatePassword_Valid(t *testing.T) {
	assert.NoError(t, ValidatePassword("ValidPass1!"))
	assert.NoError(t, ValidatePassword(`Tricky"Quote9`))
}

func TestValidatePassword_TooShort(t *testing.T) {
	err := ValidatePassword("Va1!")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestValidatePassword_TooLong(t *testing.T) {
	err := ValidatePassword("Aa1!" + strings.Repeat("x", 126))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 128 characters")
}

func TestValidatePassword_MissingUppercase(t *testing.T) {
	err := ValidatePassword("validpass1!")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase")
}

func TestValidatePassword_MissingLowercase(t *testing.T) {
	err := ValidatePassword("VALIDPASS1!")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lowercase")
}

func TestValidatePassword_MissingNumber(t *testing.T) {
	err := ValidatePassword("ValidPass!")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "number")
}

func TestValidatePassword_MissingSpecial(t *testing.T) {
	err := ValidatePassword("ValidPass1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "special character")
}

func TestValidatePassword_FailsFastOnFirstRule(t *testing.T) {
	// Violates every rule; only the length rule is reported.
	err := ValidatePassword("abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}
