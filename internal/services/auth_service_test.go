package services

import (
	"testing"

	"offerwall-service/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginWithStoredAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	assert.NoError(t, db.Create(&models.Admin{Username: "boss", PasswordHash: string(hash), Role: "admin"}).Error)

	token, err := svc.Login("boss", "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "boss", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.Login("boss", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginBootstrapCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "bootstrap")

	token, err := svc.Login("root", "bootstrap")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("root", "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Bootstrap credentials stop working once a real admin exists.
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	assert.NoError(t, db.Create(&models.Admin{Username: "boss", PasswordHash: string(hash)}).Error)

	_, err = svc.Login("root", "bootstrap")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login("", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
