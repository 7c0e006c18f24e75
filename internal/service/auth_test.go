package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	user, token, err := svc.Register("Alice", "a@x.com", "secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.Equal(t, models.RoleUser, user.Role)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	loggedIn, token, err := svc.Login("a@x.com", "secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Equal(t, user.Email, loggedIn.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	_, _, err := svc.Register("Alice", "a@x.com", "secret1")
	assert.NoError(t, err)

	_, _, err = svc.Register("Other Alice", "a@x.com", "secret2")
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	_, _, err := svc.Register("Alice", "a@x.com", "secret1")
	assert.NoError(t, err)

	_, _, err = svc.Login("a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenMalformed(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", -time.Hour)

	token, err := svc.GenerateToken(uuid.New())
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewAuthService(nil, "secret-one", time.Hour)
	verifier := NewAuthService(nil, "secret-two", time.Hour)

	token, err := issuer.GenerateToken(uuid.New())
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetPasswordRoundTrip(t *testing.T) {
	var user models.User
	err := user.SetPassword("secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.True(t, user.CheckPassword("secret1"))
	assert.False(t, user.CheckPassword("secret2"))
}
