package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/jhoicas/kardex-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	token, err := jwt.Generate("s3cret", "u-1", "ana@example.com", "kardex-api", 5)
	require.NoError(t, err)

	userID, email, err := jwt.Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "ana@example.com", email)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("s3cret", "u-1", "ana@example.com", "kardex-api", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("s3cret", "u-1", "ana@example.com", "kardex-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("s3cret", token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_AlgoritmoNoPermitido(t *testing.T) {
	claims := jwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, _, err = jwt.Parse("s3cret", token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_SinVencimiento(t *testing.T) {
	claims := jwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: "u-1"}}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, _, err = jwt.Parse("s3cret", token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "ana@example.com", "kardex-api", 5)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
