package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"sosmed/internal/models"
	"sosmed/internal/repositories"
)

// Identity is the decoded token payload exposed to protected handlers.
type Identity struct {
	ID       uint
	Username string
}

// AuthService handles business logic for registration and authentication.
type AuthService struct {
	userRepo     repositories.UserRepository
	jwtSecret    []byte
	tokenDurat   time.Duration // Duration for which JWT is valid
	storeTimeout time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenDurat:   time.Hour,
		storeTimeout: 5 * time.Second,
	}
}

// Register hashes the password and stores a new user. The username must be
// globally unique; a collision is reported as ErrUsernameTaken whether it is
// caught by the lookup or by the store's unique index.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if existing, err := s.userRepo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeErr(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hashed)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, storeErr(err)
	}
	return user, nil
}

// Login authenticates a user and returns a signed JWT if successful.
// An unknown username and a wrong password both come back as
// ErrInvalidCredentials so the response does not reveal which usernames
// exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", storeErr(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the identity it
// asserts. Validity is purely signature plus expiry; there is no session
// store to consult.
func (s *AuthService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	id, idOK := claims["id"].(float64)
	username, nameOK := claims["username"].(string)
	if !idOK || !nameOK {
		return nil, fmt.Errorf("token is missing identity claims")
	}

	return &Identity{ID: uint(id), Username: username}, nil
}
