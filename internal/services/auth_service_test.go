package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"sosmed/internal/models"
	"sosmed/internal/repositories"
	"sosmed/internal/services"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Successful registration stores a bcrypt hash, never the password.
	mockRepo.On("GetByUsername", mock.Anything, "alice").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).Return(nil).Once()

	user, err := authService.Register(context.Background(), "alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))
	mockRepo.AssertExpectations(t)

	// Username already taken.
	mockRepo.On("GetByUsername", mock.Anything, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil).Once()
	_, err = authService.Register(context.Background(), "alice", "pw1")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)

	// A duplicate caught by the store's unique index (lost race) is still a
	// conflict, not a server error.
	mockRepo.On("GetByUsername", mock.Anything, "bob").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("username %q: %w", "bob", repositories.ErrDuplicate)).Once()
	_, err = authService.Register(context.Background(), "bob", "pw2")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	user := &models.User{ID: 7, Username: "alice", PasswordHash: string(hashed)}

	// Successful login returns a token carrying the identity claims.
	mockRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil).Once()
	tokenString, err := authService.Login(context.Background(), "alice", "pw1")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.EqualValues(t, 7, claims["id"])
	assert.Equal(t, "alice", claims["username"])
	exp := int64(claims["exp"].(float64))
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), exp, 5)
	mockRepo.AssertExpectations(t)

	// Wrong password.
	mockRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil).Once()
	_, err = authService.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown username yields the same error, so callers cannot probe for
	// existing usernames.
	mockRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Login(context.Background(), "ghost", "pw1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	signToken := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id":       float64(42),
			"username": "alice",
			"exp":      exp.Unix(),
		})
		signed, err := token.SignedString([]byte(testJWTSecret))
		assert.NoError(t, err)
		return signed
	}

	// Valid token.
	identity, err := authService.ValidateToken(signToken(time.Now().Add(time.Hour)))
	assert.NoError(t, err)
	assert.Equal(t, uint(42), identity.ID)
	assert.Equal(t, "alice", identity.Username)

	// Garbage token.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Expired token.
	_, err = authService.ValidateToken(signToken(time.Now().Add(-time.Hour)))
	assert.Error(t, err)

	// Token signed with a different secret.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       float64(42),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := token.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(signed)
	assert.Error(t, err)
}
