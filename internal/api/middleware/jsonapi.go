package middleware

import (
	"net/http"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
)

// EnsureJSONAPIHeaders is the content negotiation gate for the JSON:API
// routes. Requests must accept application/vnd.api+json (406 otherwise),
// and POST/PATCH bodies must be sent as application/vnd.api+json (415
// otherwise). Every response leaving the gate, including the rejections,
// carries Content-Type: application/vnd.api+json regardless of what
// downstream handlers set.
func EnsureJSONAPIHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := &mediaTypeWriter{ResponseWriter: w}

		if r.Header.Get("Accept") != shared.MediaType {
			mw.WriteHeader(http.StatusNotAcceptable)
			return
		}

		if hasBody(r.Method) && r.Header.Get("Content-Type") != shared.MediaType {
			mw.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(mw, r)
		mw.ensureHeader()
	})
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPatch
}

// mediaTypeWriter forces the JSON:API content type onto the response at
// the moment headers are flushed.
type mediaTypeWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *mediaTypeWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.ResponseWriter.Header().Set("Content-Type", shared.MediaType)
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *mediaTypeWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// ensureHeader covers handlers that return without writing anything.
func (w *mediaTypeWriter) ensureHeader() {
	if !w.wroteHeader {
		w.ResponseWriter.Header().Set("Content-Type", shared.MediaType)
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *mediaTypeWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
