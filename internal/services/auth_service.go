package services

import (
	"errors"
	"os"
	"time"

	"offerwall-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB     *gorm.DB
	Secret []byte
}

func NewAuthService(db *gorm.DB) *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	return &AuthService{DB: db, Secret: []byte(secret)}
}

type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Login checks the credentials against the admins table and returns a signed
// token. When no admin rows exist yet, the ADMIN_USERNAME/ADMIN_PASSWORD
// bootstrap credentials from the environment are accepted instead.
func (s *AuthService) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrUnauthorized
	}

	var admin models.Admin
	err := s.DB.Where("username = ?", username).First(&admin).Error
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			return "", ErrUnauthorized
		}
		return s.issueToken(admin.Username, admin.Role)
	case errors.Is(err, gorm.ErrRecordNotFound):
		var count int64
		s.DB.Model(&models.Admin{}).Count(&count)
		if count == 0 &&
			os.Getenv("ADMIN_USERNAME") != "" &&
			username == os.Getenv("ADMIN_USERNAME") &&
			password == os.Getenv("ADMIN_PASSWORD") {
			return s.issueToken(username, "admin")
		}
		return "", ErrUnauthorized
	default:
		return "", err
	}
}

func (s *AuthService) issueToken(username, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	})
	return token.SignedString(s.Secret)
}

// VerifyToken parses and validates a token issued by Login.
func (s *AuthService) VerifyToken(raw string) (*AdminClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
