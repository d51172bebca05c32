package middleware

import (
	"net/http"

	"mandimart-be/internal/auth"
	"mandimart-be/internal/user"
	"mandimart-be/internal/utils"
)

// AuthMiddleware resolves the caller identity from the access token and
// stores (userID, email, role) in the request context. Requests without a
// valid token pass through anonymous; handlers behind RequireRole reject
// them.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole guards a route group: the caller must be authenticated and
// hold one of the given roles. ADMIN always passes.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			role := utils.GetUserRoleFromContext(r.Context())
			if role == utils.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
		})
	}
}
