package middleware

import (
	"fmt"
	"net/http"
)

// RealStatusHeader carries the real response status once the wire
// status has been rewritten to 200. The game engine's HTTP client
// drops the response body on anything other than 200, so the actual
// outcome travels out-of-band in this header as "<code> <reason>".
const RealStatusHeader = "REAL_STATUS"

// unityWriter rewrites every status code to 200 and records the
// original in the REAL_STATUS header.
type unityWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

// WriteHeader stashes the real status and sends 200 instead
func (uw *unityWriter) WriteHeader(code int) {
	if uw.wroteHeader {
		return
	}
	uw.wroteHeader = true

	// Set the header via the map directly: the client matches the
	// header name case-sensitively, and Header().Set would rewrite
	// it to canonical MIME casing.
	uw.Header()[RealStatusHeader] = []string{fmt.Sprintf("%d %s", code, http.StatusText(code))}
	uw.ResponseWriter.WriteHeader(http.StatusOK)
}

// Write triggers the implicit 200 before the first body bytes
func (uw *unityWriter) Write(b []byte) (int, error) {
	if !uw.wroteHeader {
		uw.WriteHeader(http.StatusOK)
	}
	return uw.ResponseWriter.Write(b)
}

// Flush forwards to the underlying writer so streaming handlers still
// work behind the rewrite.
func (uw *unityWriter) Flush() {
	if f, ok := uw.ResponseWriter.(http.Flusher); ok {
		if !uw.wroteHeader {
			uw.WriteHeader(http.StatusOK)
		}
		f.Flush()
	}
}

// UnityStatusMiddleware wraps every response so the wire status is
// always 200, with the real status preserved in REAL_STATUS. It must
// sit at the outermost position of the chain so error responses from
// inner middleware are rewritten too.
func UnityStatusMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&unityWriter{ResponseWriter: w}, r)
		})
	}
}
