package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts verified access tokens that name a user and a known
// role. It runs after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			if tokenType, _ := claims["type"].(string); tokenType != "access" {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}
			if userID, _ := claims["user_id"].(string); userID == "" {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}
			if role, _ := claims["role"].(string); !jwt.Role(role).IsValid() {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
