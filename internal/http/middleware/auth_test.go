package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filski95/web-app-challets/internal/http/middleware"
)

const secret = "test-secret"

func signToken(t *testing.T, subject string, admin bool, key string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"admin": admin,
	})

	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)

	return signed
}

func TestAuthenticator(t *testing.T) {
	ownerID := uuid.New()

	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "ValidToken",
			header:     "Bearer " + signToken(t, ownerID.String(), false, secret),
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingHeader",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NotBearer",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongKey",
			header:     "Bearer " + signToken(t, ownerID.String(), false, "other-secret"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "SubjectNotUUID",
			header:     "Bearer " + signToken(t, "user-42", false, secret),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity *middleware.Identity

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := middleware.FromContext(r.Context())
				require.True(t, ok)
				gotIdentity = &id
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			middleware.Authenticator(secret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, gotIdentity)
				assert.Equal(t, ownerID, gotIdentity.OwnerID)
				assert.False(t, gotIdentity.Admin)
			} else {
				assert.Nil(t, gotIdentity)
			}
		})
	}
}

func TestAuthenticator_AdminClaim(t *testing.T) {
	ownerID := uuid.New()

	var gotIdentity middleware.Identity

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, _ = middleware.FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, ownerID.String(), true, secret))

	rec := httptest.NewRecorder()
	middleware.Authenticator(secret)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotIdentity.Admin)
}

func TestRequireAdmin(t *testing.T) {
	ownerID := uuid.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := middleware.Authenticator(secret)(middleware.RequireAdmin(next))

	t.Run("Admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, ownerID.String(), true, secret))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("NonAdmin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, ownerID.String(), false, secret))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
