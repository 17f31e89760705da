package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	jwtlib "github.com/immxrtalbeast/frameboard/internal/lib/jwt"
	"github.com/immxrtalbeast/frameboard/internal/repository"
	"github.com/immxrtalbeast/frameboard/lib/logger/sl"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users  repository.UserRepository
	tokens *jwtlib.Manager
	log    *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *jwtlib.Manager, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{users: users, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	const op = "service.auth.register"
	log := s.log.With(slog.String("op", op))

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, errors.New("name is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return nil, err
	}

	user := domain.NewUser(name, email)
	if err := s.users.Create(ctx, user, hash); err != nil {
		log.Info("user create failed", sl.Err(err))
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	const op = "service.auth.login"
	log := s.log.With(slog.String("op", op))

	email = strings.ToLower(strings.TrimSpace(email))

	user, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		log.Info("password mismatch", slog.String("user_id", user.ID.String()))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(jwtlib.Identity{UserID: user.ID, Name: user.Name})
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		return "", nil, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
