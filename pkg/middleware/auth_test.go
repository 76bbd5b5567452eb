package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"art-booking/internal/data/entity"
	"art-booking/pkg/middleware"
	"art-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// echoIdentity writes the caller id and role seen on the request context.
func echoIdentity(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(identity.ID + "/" + string(identity.Role)))
}

func TestIdentity(t *testing.T) {
	h := middleware.Identity(zap.NewNop())(http.HandlerFunc(echoIdentity))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set(middleware.UserIDHeader, " u1 ")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1/"+string(entity.RoleCustomer), rec.Body.String())
}

func TestAdmin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	h := middleware.Admin(string(hash), zap.NewNop())(http.HandlerFunc(echoIdentity))

	cases := []struct {
		name   string
		header string
		admin  string
		code   int
		body   string
	}{
		{name: "missing", code: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic s3cret", code: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", code: http.StatusUnauthorized},
		{name: "wrong token", header: "Bearer nope", code: http.StatusForbidden},
		{name: "default admin", header: "Bearer s3cret", code: http.StatusOK, body: "admin/" + string(entity.RoleAdmin)},
		{name: "named admin", header: "Bearer s3cret", admin: "ops-1", code: http.StatusOK, body: "ops-1/" + string(entity.RoleAdmin)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/trips", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.admin != "" {
				req.Header.Set(middleware.AdminIDHeader, tc.admin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.code, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestAdmin_DisabledWithoutHash(t *testing.T) {
	h := middleware.Admin("", zap.NewNop())(http.HandlerFunc(echoIdentity))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/trips", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
