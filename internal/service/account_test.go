package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/budget-keeper/internal/errs"
)

func TestCheckPassword(t *testing.T) {
	t.Parallel()
	cases := []struct {
		pw, confirm string
		ok          bool
	}{
		{"Secret12", "Secret12", true},
		{"Sec12", "Sec12", false},
		{"secret123", "secret123", false},
		{"SECRETPASS", "SECRETPASS", false},
		{"Secret123", "Secret124", false},
		{"Ünïcode99", "Ünïcode99", false},
		{"Secret١٢٣", "Secret١٢٣", false},
		{"ÄrgerLich9", "ÄrgerLich9", true},
	}
	for _, tc := range cases {
		err := CheckPassword(tc.pw, tc.confirm)
		if tc.ok {
			require.NoError(t, err, tc.pw)
			continue
		}
		require.ErrorIs(t, err, errs.ErrValidation, tc.pw)
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	svc := NewAccountService(api, &fakeSession{})

	_, err := svc.Register(ctx, "", "a@b.nl", "Secret123", "Secret123")
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.Register(ctx, "Ann", "not-an-email", "Secret123", "Secret123")
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.Register(ctx, "Ann", "Ann <a@b.nl>", "Secret123", "Secret123")
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.Register(ctx, "Ann", "a@b.nl", "Secret123", "nope")
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Empty(t, api.called())

	u, err := svc.Register(ctx, " Ann ", " a@b.nl ", "Secret123", "Secret123")
	require.NoError(t, err)
	require.Equal(t, "Ann", api.gotRegister.Name)
	require.Equal(t, "a@b.nl", u.Email)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{token: "tok"}
	sess := &fakeSession{}
	svc := NewAccountService(api, sess)

	_, err := svc.Login(ctx, "a@b.nl", "")
	require.ErrorIs(t, err, errs.ErrValidation)

	u, err := svc.Login(ctx, "a@b.nl", "Secret123")
	require.NoError(t, err)
	require.Equal(t, "tok", sess.token)
	require.Equal(t, int64(42), u.ID)

	require.NoError(t, svc.Logout(ctx))
	require.Empty(t, sess.token)

	api.token = ""
	_, err = svc.Login(ctx, "a@b.nl", "Secret123")
	require.Error(t, err)

	api.err = errs.ErrUnauthorized
	_, err = svc.Login(ctx, "a@b.nl", "wrong")
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	api.err = nil
	api.token = "tok"
	sess.loginErr = errors.New("disk full")
	_, err = svc.Login(ctx, "a@b.nl", "Secret123")
	require.Error(t, err)
}

func TestPasswordRecovery(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	svc := NewAccountService(api, &fakeSession{})

	_, err := svc.ForgotPassword(ctx, "")
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.ForgotPassword(ctx, "a@b.nl")
	require.NoError(t, err)

	_, err = svc.ResetPassword(ctx, "", "Secret123", "Secret123")
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.ResetPassword(ctx, "rt", "short", "short")
	require.ErrorIs(t, err, errs.ErrValidation)
	msg, err := svc.ResetPassword(ctx, "rt", "Secret123", "Secret123")
	require.NoError(t, err)
	require.Equal(t, "Password has been reset", msg)
	require.Equal(t, []string{"ForgotPassword", "ResetPassword"}, api.called())
}
