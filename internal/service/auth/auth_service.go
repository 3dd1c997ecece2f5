package auth

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/idtoken"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/service"
	"blog-api/pkg/errors"
	"blog-api/pkg/logger"
)

// idTokenValidator matches *idtoken.Validator; swapped out in tests
type idTokenValidator interface {
	Validate(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)
}

// Service implements the AuthService interface
type Service struct {
	clientID  string
	secret    []byte
	ttl       time.Duration
	users     repository.UserRepository
	validator idTokenValidator
	logger    *logger.Logger
}

// sessionClaims is the payload of the internal session JWT
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewService creates a new auth service
func NewService(ctx context.Context, clientID, jwtSecret string, ttl time.Duration, users repository.UserRepository, log *logger.Logger) (service.AuthService, error) {
	validator, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google ID token validator: %w", err)
	}

	return &Service{
		clientID:  clientID,
		secret:    []byte(jwtSecret),
		ttl:       ttl,
		users:     users,
		validator: validator,
		logger:    log,
	}, nil
}

// Login verifies a Google ID token, resolves or creates the user and issues a
// session JWT. Any failed step aborts the whole flow; a user created in step
// two stays created since token issuance cannot fail for a valid record.
func (s *Service) Login(ctx context.Context, rawIDToken string) (*domain.LoginResponse, error) {
	identity, err := s.VerifyGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindOrCreate(ctx, identity)
	if err != nil {
		s.logger.WithError(err).Error("Failed to resolve user for verified identity")
		var appErr *errors.AppError
		if goerrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.NewInternalError("Failed to resolve user", err)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign session token")
		return nil, errors.NewInternalError("Failed to issue token", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User logged in")

	// The user block echoes what Google asserted, not the stored record
	return &domain.LoginResponse{
		Message: "User information from Google",
		User: &domain.IdentityReply{
			ID:      identity.Sub,
			Email:   identity.Email,
			Name:    identity.Name,
			Picture: identity.Picture,
		},
		JWT: token,
	}, nil
}

// VerifyGoogleIDToken validates an externally-issued Google ID token against
// Google's published signing keys and the configured audience. Transient key
// fetch failures surface as authentication errors; there is no retry.
func (s *Service) VerifyGoogleIDToken(ctx context.Context, rawIDToken string) (*domain.GoogleIdentity, error) {
	payload, err := s.validator.Validate(ctx, rawIDToken, s.clientID)
	if err != nil {
		s.logger.WithError(err).Warn("Google ID token rejected")
		return nil, errors.NewAuthenticationError("Invalid Google token")
	}

	identity := &domain.GoogleIdentity{
		Sub:           payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		Name:          claimString(payload.Claims, "name"),
		Picture:       claimString(payload.Claims, "picture"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
	}

	if identity.Sub == "" || identity.Email == "" {
		s.logger.Warn("Google ID token verified but missing required claims")
		return nil, errors.NewAuthenticationError("Invalid Google token: missing required claims")
	}

	return identity, nil
}

// IssueToken mints a signed session token carrying the internal user id and
// email, expiring after the configured TTL
func (s *Service) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken verifies a session token's signature and expiry and resolves
// it back to its user record
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			s.logger.WithField("reason", "expired").Debug("Session token rejected")
			return nil, errors.NewAuthenticationError("Token has expired")
		}
		s.logger.WithField("reason", "invalid").WithError(err).Debug("Session token rejected")
		return nil, errors.NewAuthenticationError("Invalid token")
	}

	if !token.Valid {
		return nil, errors.NewAuthenticationError("Invalid token")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up token subject")
		return nil, errors.NewInternalError("Failed to resolve user", err)
	}
	if user == nil {
		// Token is well-signed but references a record deleted out-of-band
		s.logger.WithField("user_id", claims.Subject).Warn("Valid token for missing user")
		return nil, errors.NewAuthenticationError("Invalid token or user not found")
	}

	return user, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func claimBool(claims map[string]interface{}, key string) bool {
	if val, ok := claims[key].(bool); ok {
		return val
	}
	return false
}
