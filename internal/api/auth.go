package api

import (
	"context"
	"net/http"

	"github.com/and161185/budget-keeper/internal/model"
)

// Login exchanges credentials for an access token. It does not store the token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	return sendJSON[model.TokenResponse](ctx, c, http.MethodPost, "/auth/login",
		model.LoginRequest{Email: email, Password: password})
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	return getJSON[model.User](ctx, c, "/auth/me", nil)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in model.RegisterRequest) (*model.User, error) {
	return sendJSON[model.User](ctx, c, http.MethodPost, "/auth/register", in)
}

// ForgotPassword requests a reset token for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*model.ForgotPasswordResponse, error) {
	return sendJSON[model.ForgotPasswordResponse](ctx, c, http.MethodPost, "/auth/forgot-password",
		model.ForgotPasswordRequest{Email: email})
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (*model.MessageResponse, error) {
	return sendJSON[model.MessageResponse](ctx, c, http.MethodPost, "/auth/reset-password",
		model.ResetPasswordRequest{Token: token, NewPassword: newPassword})
}
