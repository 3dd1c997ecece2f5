package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-api/internal/domain"
	"blog-api/pkg/errors"
	"blog-api/pkg/logger"
)

// fakeAuthService accepts exactly one token and resolves it to a fixed user
type fakeAuthService struct {
	acceptToken string
	user        *domain.User
}

func (f *fakeAuthService) Login(ctx context.Context, rawIDToken string) (*domain.LoginResponse, error) {
	return nil, errors.NewAuthenticationError("not implemented")
}

func (f *fakeAuthService) VerifyGoogleIDToken(ctx context.Context, rawIDToken string) (*domain.GoogleIdentity, error) {
	return nil, errors.NewAuthenticationError("not implemented")
}

func (f *fakeAuthService) IssueToken(user *domain.User) (string, error) {
	return f.acceptToken, nil
}

func (f *fakeAuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if token == f.acceptToken {
		return f.user, nil
	}
	return nil, errors.NewAuthenticationError("Invalid token")
}

func TestAuthMiddleware(t *testing.T) {
	log, err := logger.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	authService := &fakeAuthService{
		acceptToken: "good-token",
		user:        &domain.User{ID: "u1", Email: "a@example.com"},
	}

	var capturedUser *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(authService, log)(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUser   bool
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer good-token",
			wantStatus: http.StatusOK,
			wantUser:   true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic good-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			authHeader: "Bearer bad-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capturedUser = nil

			r := httptest.NewRequest("GET", "/blogs", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantUser {
				if capturedUser == nil {
					t.Fatal("user not injected into context")
				}
				if capturedUser.ID != "u1" {
					t.Errorf("context user id = %q, want %q", capturedUser.ID, "u1")
				}
			} else if capturedUser != nil {
				t.Error("handler ran for a rejected request")
			}
		})
	}
}
