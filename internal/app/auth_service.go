package app

import (
	"errors"
	"fmt"
	"strings"

	"kpione/internal/model"
	"kpione/internal/pkg/password"
	"kpione/internal/pkg/token"
	"kpione/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUserExists   = errors.New("username or email already registered")
	// ErrInvalidCredential covers both an unknown email and a wrong password;
	// login must not reveal which of the two failed.
	ErrInvalidCredential = errors.New("invalid email or password")
)

type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *token.Service
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

func NewAuthService(userRepo *repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if username == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	existingByName, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	existingByEmail, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingByName != nil || existingByEmail != nil {
		return nil, ErrUserExists
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email but issues a token carrying the username
// claim, which is also how the middleware resolves the user afterwards.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	ok, err := password.Verify(user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password failed: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredential
	}

	accessToken, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token failed: %w", err)
	}
	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		Username:    user.Username,
	}, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByID(id)
}
