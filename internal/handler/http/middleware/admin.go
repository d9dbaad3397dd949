package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly guards manual day status overrides
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || jwt.Role(role) != jwt.RoleAdmin {
			response.HandleError(w, jwt.ErrAdminRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
