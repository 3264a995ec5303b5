package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/sanitize"
	"github.com/megamind-app/megamind-backend/internal/types"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DisplayName     string `json:"displayName"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult pairs the account with a freshly signed access token.
type AuthResult struct {
	User  *types.User `json:"user"`
	Token string      `json:"token"`
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	VerifyToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(baseLog *logger.Logger, userRepo repos.UserRepo) AuthService {
	log := baseLog.With("service", "AuthService")
	secret := utils.GetEnv("JWT_SECRET_KEY", "dev-secret-key-change-in-production", log)
	ttlSeconds := utils.GetEnvAsInt("JWT_ACCESS_TOKEN_EXPIRES", 3600, log)
	return &authService{
		log:          log,
		userRepo:     userRepo,
		jwtSecretKey: secret,
		accessTTL:    time.Duration(ttlSeconds) * time.Second,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	fields := map[string]string{}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fields["email"] = "valid email required"
	}
	if len(in.Password) < 8 {
		fields["password"] = "minimum 8 characters required"
	}
	if in.Password != in.ConfirmPassword {
		fields["confirmPassword"] = "passwords do not match"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidFields("Invalid registration data", fields)
	}

	email := sanitize.Text(strings.ToLower(in.Email))
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperr.Internal("failed to check email", err)
	}
	if exists {
		return nil, apperr.Conflict(apperr.CodeEmailExists, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	displayName := sanitize.Text(in.DisplayName)
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	now := utils.NowUTC()
	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.log.Error("Register failed", "error", err)
		return nil, apperr.Internal("failed to create user", err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperr.Internal("failed to sign token", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, apperr.Invalid(apperr.CodeInvalidCredentials, "Email and password required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, apperr.Internal("failed to fetch user", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized(apperr.CodeInvalidCredentials, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized(apperr.CodeInvalidCredentials, "Invalid email or password")
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperr.Internal("failed to sign token", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}

func (s *authService) VerifyToken(tokenString string) (uuid.UUID, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, apperr.Unauthorized(apperr.CodeUnauthorized, "Invalid or expired token")
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return uuid.Nil, apperr.Unauthorized(apperr.CodeUnauthorized, "Invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized(apperr.CodeUnauthorized, "Invalid or expired token")
	}
	return userID, nil
}
