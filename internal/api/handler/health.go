package handler

import (
	"fmt"
	"net/http"
)

// NewHealthHandler returns the liveness probe handler.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}
}
