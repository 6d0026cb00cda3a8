package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/budget-keeper/internal/model"
)

// AccountAPI is the part of the REST client used by AccountService.
type AccountAPI interface {
	Login(ctx context.Context, email, password string) (*model.TokenResponse, error)
	Register(ctx context.Context, in model.RegisterRequest) (*model.User, error)
	ForgotPassword(ctx context.Context, email string) (*model.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*model.MessageResponse, error)
}

// Session is the part of the session manager used by AccountService.
type Session interface {
	UserSource
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}

// AccountService handles sign-up, sign-in and password recovery.
type AccountService interface {
	// Login authenticates and persists the token in the session.
	Login(ctx context.Context, email, password string) (*model.User, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, name, email, password, confirm string) (*model.User, error)
	ForgotPassword(ctx context.Context, email string) (*model.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, token, password, confirm string) (string, error)
}

type AccountServiceImpl struct {
	api  AccountAPI
	sess Session
}

// NewAccountService constructs AccountService.
func NewAccountService(api AccountAPI, sess Session) *AccountServiceImpl {
	return &AccountServiceImpl{api: api, sess: sess}
}

func (s *AccountServiceImpl) Login(ctx context.Context, email, password string) (*model.User, error) {
	req := model.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := check(req); err != nil {
		return nil, err
	}
	tok, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("login: empty access token in response")
	}
	if err := s.sess.Login(ctx, tok.AccessToken); err != nil {
		return nil, err
	}
	u, _ := s.sess.CurrentUser()
	return u, nil
}

func (s *AccountServiceImpl) Logout(ctx context.Context) error { return s.sess.Logout(ctx) }

func (s *AccountServiceImpl) Register(ctx context.Context, name, email, password, confirm string) (*model.User, error) {
	req := model.RegisterRequest{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if err := check(req); err != nil {
		return nil, err
	}
	if err := CheckPassword(password, confirm); err != nil {
		return nil, err
	}
	return s.api.Register(ctx, req)
}

func (s *AccountServiceImpl) ForgotPassword(ctx context.Context, email string) (*model.ForgotPasswordResponse, error) {
	req := model.ForgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := check(req); err != nil {
		return nil, err
	}
	return s.api.ForgotPassword(ctx, req.Email)
}

func (s *AccountServiceImpl) ResetPassword(ctx context.Context, token, password, confirm string) (string, error) {
	req := model.ResetPasswordRequest{Token: token, NewPassword: password}
	if err := check(req); err != nil {
		return "", err
	}
	if err := CheckPassword(password, confirm); err != nil {
		return "", err
	}
	res, err := s.api.ResetPassword(ctx, req.Token, req.NewPassword)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// passwordForm carries the sign-up password rules.
type passwordForm struct {
	Password string `json:"password" validate:"required,min=8,password"`
	Confirm  string `json:"confirm" validate:"eqfield=Password"`
}

// CheckPassword enforces the sign-up rules: at least 8 characters,
// an ASCII uppercase letter, an ASCII digit, and a matching confirmation.
func CheckPassword(password, confirm string) error {
	return check(passwordForm{Password: password, Confirm: confirm})
}
