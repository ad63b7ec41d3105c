package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Logging middleware tags each request with a generated ID and logs the
// method, path and duration. The ID is echoed in the X-Request-ID header so
// clients can quote it when reporting problems.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// pathUserID parses the {userID} path segment.
func pathUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("userID"), 10, 64)
}

// queryInt parses an optional integer query parameter, returning def when
// the parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
