package middleware

import (
	"net/http"
	"strings"

	"art-booking/internal/data/entity"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	UserIDHeader  = "X-User-ID"
	AdminIDHeader = "X-Admin-ID"
	defaultAdmin  = "admin"
)

// Identity trusts the user id forwarded by the credential service in
// X-User-ID and puts it on the request context.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if userID == "" {
				logger.Debug("Request without user identity", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Missing "+UserIDHeader+" header")
				return
			}

			ctx := utils.SetIdentity(r.Context(), entity.Identity{ID: userID, Role: entity.RoleCustomer})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin checks the bearer token against a bcrypt hash. An empty hash
// disables every admin route.
func Admin(tokenHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				utils.ResponseForbidden(w, "Admin access is not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(parts[1])); err != nil {
				logger.Warn("Admin check: invalid token",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			adminID := strings.TrimSpace(r.Header.Get(AdminIDHeader))
			if adminID == "" {
				adminID = defaultAdmin
			}

			ctx := utils.SetIdentity(r.Context(), entity.Identity{ID: adminID, Role: entity.RoleAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
