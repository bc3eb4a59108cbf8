package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/atlab/booking-service/internal/api/handlers"
)

const staffPasscodeHeader = "X-Staff-Passcode"

// StaffAuth проверяет код доступа персонала в заголовке X-Staff-Passcode
func StaffAuth(passcode string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(staffPasscodeHeader)
			if provided == "" {
				handlers.RespondUnauthorized(w, "staff passcode required")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(passcode)) != 1 {
				handlers.RespondForbidden(w, "invalid staff passcode")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
