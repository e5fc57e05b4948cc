package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/user"
	"github.com/staffhub-dev/timeclock-backend-go/internal/handler/http/response"
)

// RequireManagement requires an admin, hr or manager role.
func RequireManagement(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrManagementAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrManagementAccessRequired)
			return
		}

		if !user.IsManagementRole(user.Role(roleStr)) {
			response.HandleError(w, user.ErrManagementAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
