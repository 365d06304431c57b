package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/internal/users"
	pkgauth "github.com/MichIoan/DP-API-2024-sub000/pkg/auth"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/config"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	invalidRefreshMessage     = "invalid refresh token"
	referralCodeLength        = 8
	referralCodeAttempts      = 5
	tokenTypeBearer           = "Bearer"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByReferralCode(ctx context.Context, code string) (*models.User, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
}

type tokenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, token *models.RefreshToken) error
	FindByHash(ctx context.Context, tx *gorm.DB, hash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, tx *gorm.DB, id uint, at time.Time) (bool, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	TokenRepo      tokenRepository
	DB             txRunner
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Clock          func() time.Time
}

type service struct {
	users     userRepository
	tokens    tokenRepository
	db        txRunner
	jwtCfg    config.JWTConfig
	passwords config.PasswordConfig
	now       func() time.Time
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repository is required")
	}
	if params.TokenRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token repository is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		users:     params.UserRepo,
		tokens:    params.TokenRepo,
		db:        params.DB,
		jwtCfg:    params.JWTConfig,
		passwords: params.PasswordConfig,
		now:       clock,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	var referredBy *uint
	if req.ReferralCode != nil && strings.TrimSpace(*req.ReferralCode) != "" {
		referrer, err := s.users.FindByReferralCode(ctx, strings.ToUpper(strings.TrimSpace(*req.ReferralCode)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid referral code")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup referral code")
		}
		referredBy = &referrer.ID
	}

	hash, err := security.HashPassword(req.Password, s.passwords)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	code, err := s.uniqueReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		ReferralCode: code,
		ReferredBy:   referredBy,
	})
	if err != nil {
		return nil, db.MapError(err, db.ErrorMessages{
			Conflict: "email already registered",
			Fallback: "create user",
		})
	}
	return users.FromModel(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	var resp *TokenResponse
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		issued, err := s.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		resp = issued
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Refresh revokes the presented token and issues a new pair in one transaction.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refresh token is required")
	}
	now := s.now().UTC()

	var resp *TokenResponse
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		stored, err := s.tokens.FindByHash(ctx, tx, security.HashToken(refreshToken))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidRefreshMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup refresh token")
		}
		if !stored.Usable(now) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidRefreshMessage)
		}

		revoked, err := s.tokens.Revoke(ctx, tx, stored.ID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke refresh token")
		}
		if !revoked {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidRefreshMessage)
		}

		var user models.User
		if err := tx.Where("id = ? AND deleted_at IS NULL", stored.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidRefreshMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}
		if !user.Status.CanAuthenticate() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "account is not active")
		}

		issued, err := s.issueTokens(ctx, tx, &user)
		if err != nil {
			return err
		}
		resp = issued
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout revokes the refresh token. Unknown or already revoked tokens are a no-op.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "refresh token is required")
	}
	now := s.now().UTC()
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		stored, err := s.tokens.FindByHash(ctx, tx, security.HashToken(refreshToken))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup refresh token")
		}
		if _, err := s.tokens.Revoke(ctx, tx, stored.ID, now); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke refresh token")
		}
		return nil
	})
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if !user.Status.CanAuthenticate() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is not active")
	}
	return user, nil
}

func (s *service) issueTokens(ctx context.Context, tx *gorm.DB, user *models.User) (*TokenResponse, error) {
	now := s.now().UTC()
	access, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refresh, err := security.GenerateRefreshToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate refresh token")
	}
	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: security.HashToken(refresh),
		ExpiresAt: now.Add(s.jwtCfg.RefreshTokenTTL()),
	}
	if err := s.tokens.Create(ctx, tx, record); err != nil {
		return nil, db.MapError(err, db.ErrorMessages{Fallback: "store refresh token"})
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
		User:         users.FromModel(user),
	}, nil
}

func (s *service) uniqueReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < referralCodeAttempts; i++ {
		code, err := security.GenerateReferralCode(referralCodeLength)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate referral code")
		}
		exists, err := s.users.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check referral code")
		}
		if !exists {
			return code, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "could not allocate referral code")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
