package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/notify"
	"github.com/bookhive/library-service/pkg/auth"
	"github.com/bookhive/library-service/pkg/keystore"
)

func TestAuthService_OTPFlow(t *testing.T) {
	t.Parallel()
	jwtKey := []byte("test-key")
	repo := &fakeUserRepo{user: model.User{
		ID:    7,
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  model.RoleStudent,
	}}
	d := &fakeDispatcher{}
	svc := NewAuthService(repo, keystore.NewMemoryStore(), d, jwtKey, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, "  ALICE@example.com "))
	require.Len(t, d.events, 1)
	require.Equal(t, notify.OTPRequested, d.events[0].Kind)
	otp := d.events[0].OTP
	require.Len(t, otp, 6)

	wrong := "000000"
	if otp == wrong {
		wrong = "000001"
	}
	_, err := svc.VerifyOTP(ctx, "alice@example.com", wrong)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	resp, err := svc.VerifyOTP(ctx, "alice@example.com", otp)
	require.NoError(t, err)
	require.Equal(t, repo.user, resp.User)

	claims := &auth.Claims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, claims.Profile.UserID)
	require.Equal(t, auth.RoleStudent, claims.Profile.Role)

	// single use
	_, err = svc.VerifyOTP(ctx, "alice@example.com", otp)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestAuthService_RequestOTPUnknownUser(t *testing.T) {
	t.Parallel()
	svc := NewAuthService(&fakeUserRepo{}, keystore.NewMemoryStore(), &fakeDispatcher{}, []byte("k"), zap.NewNop())
	err := svc.RequestOTP(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
