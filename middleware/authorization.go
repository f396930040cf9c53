package middleware

import (
	"net/http"

	"p9e.in/buildtrack/utils"
)

// RequirePermission middleware checks if the authenticated user's role
// grants the required permission. Roles are a closed set, so the grant
// table lives in code rather than the database.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !utils.HasPermission(claims.Role, permission) {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission checks if the role grants any of the provided
// permissions
func RequireAnyPermission(permissions []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			for _, permission := range permissions {
				if utils.HasPermission(claims.Role, permission) {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}

// GetUserPermissions returns the raw grant list for the caller's role.
func GetUserPermissions(r *http.Request) []string {
	claims := GetClaims(r)
	if claims == nil {
		return nil
	}
	return utils.RolePermissions[claims.Role]
}
