package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/notify"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/pkg/auth"
	"github.com/bookhive/library-service/pkg/keystore"
)

const (
	otpTTL   = 10 * time.Minute
	tokenTTL = 24 * time.Hour
)

type AuthService struct {
	log        *zap.Logger
	repo       repository.UserRepository
	otps       keystore.Store
	dispatcher notify.Dispatcher
	jwtKey     []byte
}

func NewAuthService(
	repo repository.UserRepository,
	otps keystore.Store,
	dispatcher notify.Dispatcher,
	jwtKey []byte,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		log:        log,
		repo:       repo,
		otps:       otps,
		dispatcher: dispatcher,
		jwtKey:     jwtKey,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	if req.Role == "" {
		req.Role = model.RoleStudent
	}
	if req.Role != model.RoleStudent && req.Role != model.RoleAdmin {
		return model.User{}, errs.NewInvalidInput("role must be student or admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}

	return s.repo.CreateUser(ctx, model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         req.Role,
	})
}

// RequestOTP stores a short-lived one-time code and hands delivery to the
// dispatcher. The code never appears in the response.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return errors.Wrap(err, "generate otp")
	}
	if err := s.otps.Set(ctx, otpKey(email), otp, otpTTL); err != nil {
		return errors.Wrap(err, "store otp")
	}

	dispatch(ctx, s.dispatcher, s.log, notify.Event{
		Kind:       notify.OTPRequested,
		Recipients: []string{user.Email},
		UserName:   user.Name,
		OTP:        otp,
	})
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (model.AuthResponse, error) {
	email = normalizeEmail(email)
	stored, err := s.otps.Get(ctx, otpKey(email))
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrUnauthenticated
		}
		return model.AuthResponse{}, err
	}
	if stored != otp {
		return model.AuthResponse{}, errs.ErrUnauthenticated
	}
	// single use
	if err := s.otps.Del(ctx, otpKey(email)); err != nil {
		s.log.Warn("delete otp", zap.Error(err))
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return model.AuthResponse{}, err
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := &auth.Claims{
		Profile: auth.Principal{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   string(user.Role),
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "sign token")
	}

	return model.AuthResponse{
		AccessToken: tokenString,
		ExpiresIn:   expiresAt.Unix(),
		User:        user,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, p auth.Principal) (model.User, error) {
	return s.repo.GetUserByID(ctx, p.UserID)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func otpKey(email string) string {
	return "otp:" + email
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
