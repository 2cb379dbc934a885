package middleware

import (
	"net/http"

	"call-quality-go/internal/api/response"
	"call-quality-go/internal/logger"
)

// Recovery converts handler panics into the fixed 500 error shape.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.New().WithRequest(r).WithField("panic", rec).Error("panic recovered")
				response.Failure(w, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
