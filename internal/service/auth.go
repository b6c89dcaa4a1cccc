package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository"
	"github.com/ecowash/ecowash-backend/internal/utils"
)

// AuthService registers users and issues bearer tokens for users and
// admins.
type AuthService struct {
	users      repository.UserStore
	admins     repository.AdminStore
	secret     string
	ttlDays    int
	bcryptCost int
}

func NewAuthService(stores repository.Stores, secret string, ttlDays, bcryptCost int) *AuthService {
	return &AuthService{
		users:      stores.Users,
		admins:     stores.Admins,
		secret:     secret,
		ttlDays:    ttlDays,
		bcryptCost: bcryptCost,
	}
}

// Registration is the sign-up form.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// Register creates the user and signs them in.  ErrEmailTaken when the
// address is already registered, whether found up front or rejected by the
// store's unique key.
func (s *AuthService) Register(ctx context.Context, in Registration) (model.User, utils.AccessToken, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.User{}, utils.AccessToken{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, utils.AccessToken{}, err
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return model.User{}, utils.AccessToken{}, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.User{}, utils.AccessToken{}, ErrEmailTaken
		}
		return model.User{}, utils.AccessToken{}, err
	}
	tok, err := utils.NewAccessToken(s.secret, u.ID, utils.KindUser, s.ttlDays)
	if err != nil {
		return model.User{}, utils.AccessToken{}, err
	}
	return u, tok, nil
}

// Login checks a user's credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.User, utils.AccessToken, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, utils.AccessToken{}, ErrInvalidCredentials
		}
		return model.User{}, utils.AccessToken{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, utils.AccessToken{}, ErrInvalidCredentials
	}
	tok, err := utils.NewAccessToken(s.secret, u.ID, utils.KindUser, s.ttlDays)
	if err != nil {
		return model.User{}, utils.AccessToken{}, err
	}
	return u, tok, nil
}

// AdminLogin checks an operator's credentials against the admin store only.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (model.Admin, utils.AccessToken, error) {
	a, err := s.admins.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Admin{}, utils.AccessToken{}, ErrInvalidCredentials
		}
		return model.Admin{}, utils.AccessToken{}, err
	}
	if !utils.VerifyPassword(a.PasswordHash, password) {
		return model.Admin{}, utils.AccessToken{}, ErrInvalidCredentials
	}
	tok, err := utils.NewAccessToken(s.secret, a.ID, utils.KindAdmin, s.ttlDays)
	if err != nil {
		return model.Admin{}, utils.AccessToken{}, err
	}
	return a, tok, nil
}

// SeedAdmin replaces every admin with a single account.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return model.Admin{}, errors.New("admin email and password are required")
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.Admin{}, fmt.Errorf("hash password: %w", err)
	}
	if err := s.admins.DeleteAll(ctx); err != nil {
		return model.Admin{}, fmt.Errorf("clear admins: %w", err)
	}
	a := model.Admin{Email: email, PasswordHash: hash}
	if err := s.admins.Create(ctx, &a); err != nil {
		return model.Admin{}, fmt.Errorf("create admin: %w", err)
	}
	return a, nil
}
