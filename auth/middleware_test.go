package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	authService := newTestAuthService(t, 3600)

	token, err := authService.GenerateToken("test-user", []string{"read"})
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	tests := []struct {
		name           string
		authHeader     string
		path           string
		expectedStatus int
	}{
		{
			name:           "Valid token",
			authHeader:     "Bearer " + token,
			path:           "/dataset",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "No authorization header",
			authHeader:     "",
			path:           "/dataset",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token format",
			authHeader:     "InvalidFormat",
			path:           "/dataset",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage token",
			authHeader:     "Bearer garbage",
			path:           "/dataset",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Health endpoint without auth",
			authHeader:     "",
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
	}

	handler := AuthMiddleware(authService)(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestRBACMiddleware(t *testing.T) {
	authService := newTestAuthService(t, 3600)

	tests := []struct {
		name           string
		roles          []string
		required       Role
		expectedStatus int
	}{
		{"Role present", []string{"write"}, RoleWrite, http.StatusOK},
		{"Admin passes any check", []string{"admin"}, RoleWrite, http.StatusOK},
		{"Role missing", []string{"read"}, RoleWrite, http.StatusForbidden},
		{"No roles", nil, RoleRead, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := authService.GenerateToken("test-user", tt.roles)
			if err != nil {
				t.Fatalf("Failed to generate token: %v", err)
			}

			handler := AuthMiddleware(authService)(RBACMiddleware(tt.required)(okHandler()))

			req := httptest.NewRequest(http.MethodPut, "/dataset", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestRBACMiddlewareWithoutClaims(t *testing.T) {
	handler := RBACMiddleware(RoleRead)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/dataset", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
