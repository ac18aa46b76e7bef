// Package respond renders framework-level failures (unknown route, wrong method,
// panics) as RFC 9457 problem details, negotiated between JSON and CBOR.
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/secure-hello/internal/platform/logging"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"

	msgNotFound          = "resource not found"
	msgInternalServerErr = "internal server error"
)

// NotFoundHandler emits a 404 problem response.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowedHandler emits a 405 problem response listing the allowed methods.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		writeProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

// Recoverer converts panics into 500 problem responses.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection, and
// a response whose header was already sent is left untouched.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				var err error
				switch v := rec.(type) {
				case error:
					err = v
				default:
					err = fmt.Errorf("%v", v)
				}
				applog.LogError(r.Context(), "panic recovered", err, zap.ByteString("stack", debug.Stack()))
				if rw.wroteHeader {
					return
				}
				writeProblem(rw, r, http.StatusInternalServerError, msgInternalServerErr)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := &huma.ErrorModel{
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}

	contentType := contentTypeProblemJSON
	var body []byte
	var err error
	if selectFormat(r.Header.Get("Accept")) {
		contentType = contentTypeProblemCBOR
		body, err = cbor.Marshal(problem)
	} else {
		body, err = marshalJSON(problem)
	}
	if err != nil {
		applog.LogError(r.Context(), "failed to encode problem", err, zap.Int("status", status))
		http.Error(w, http.StatusText(status), status)
		return
	}

	h := w.Header()
	ensureVary(h, "Origin", "Accept")
	h.Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		applog.LogWarn(r.Context(), "failed to write problem", zap.Error(err))
	}
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ensureVary adds values to the Vary header unless already listed, case-insensitively.
func ensureVary(h http.Header, values ...string) {
	seen := make(map[string]struct{})
	for _, existing := range h.Values("Vary") {
		for part := range strings.SplitSeq(existing, ",") {
			if p := strings.TrimSpace(part); p != "" {
				seen[strings.ToLower(p)] = struct{}{}
			}
		}
	}
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		h.Add("Vary", v)
	}
}

// allowedMethods inspects chi's routing context to discover allowed methods.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}

	routePath := rctx.RoutePath
	if routePath == "" {
		if r.URL.RawPath != "" {
			routePath = r.URL.RawPath
		} else {
			routePath = r.URL.Path
		}
		if routePath == "" {
			routePath = "/"
		}
	}

	methods := []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowed := make([]string, 0, len(methods))
	for _, method := range methods {
		if rctx.Routes.Match(chi.NewRouteContext(), method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// responseWriter records whether the header has been sent so Recoverer knows
// if a problem response can still be written.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
