package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/redact"
)

// contentTypeFor returns the media type to answer r with. Requests that
// asked for JSON:API get it; anything else (the OAuth web routes) gets
// plain JSON.
func contentTypeFor(r *http.Request) string {
	if r != nil && r.Header.Get("Accept") == MediaType {
		return MediaType
	}
	return "application/json"
}

// RespondWithJSON writes data as the response body with the given status.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", contentTypeFor(r))
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log := slog.Default()
		if r != nil {
			log = logger.FromContextOrDefault(r.Context(), log)
		}
		log.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// RespondWithDocument writes a JSON:API document.
func RespondWithDocument(w http.ResponseWriter, r *http.Request, status int, doc Document) {
	RespondWithJSON(w, r, status, doc)
}

// RespondNoContent writes a 204 with no body.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondWithError is the single outer boundary for request failures. It
// normalizes err into an error document, logs the redacted error, and
// writes the response.
//
// Log level strategy:
//   - 5xx: ERROR
//   - 429: WARN
//   - other 4xx: DEBUG
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status, doc := Normalize(err)

	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, slog.Default())

	attrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(ctx)),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}
	if err != nil {
		logged := err
		var ierr *InternalError
		if errors.As(err, &ierr) && ierr.Err != nil {
			logged = ierr.Err
		}
		attrs = append(attrs,
			slog.String("error", redact.Error(logged)),
			slog.String("error_type", fmt.Sprintf("%T", logged)))
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	}
	log.LogAttrs(ctx, level, "API error response", attrs...)

	RespondWithJSON(w, r, status, doc)
}
