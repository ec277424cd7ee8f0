package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/hadithview/internal/logger"
	"github.com/kailas-cloud/hadithview/internal/metrics"
)

// RequestLogger writes one log line per request describing the API operation
// it served. It also hands a request-scoped logger to the handlers and echoes
// the request id set by chi's RequestID middleware.
func RequestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, info := metrics.ContextWithRequestInfo(r.Context())

			requestID := chiMiddleware.GetReqID(ctx)
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx = logpkg.ContextWithLogger(ctx, reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := []zap.Field{
				zap.String("op", info.OperationName()),
				zap.String("method", r.Method),
				zap.String("route", chi.RouteContext(ctx).RoutePattern()),
				zap.Int("status", ww.Status()),
				zap.String("outcome", metrics.Outcome(ww.Status())),
				zap.Duration("latency", time.Since(start)),
				zap.Int("response_bytes", ww.BytesWritten()),
			}
			if info.QueryLang != "" {
				fields = append(fields, zap.String("query_lang", info.QueryLang))
			}
			if info.Counted {
				fields = append(fields, zap.Int("results", info.Results))
			}
			if id := chi.URLParam(r, "id"); id != "" {
				fields = append(fields, zap.String("id", id))
			}
			reqLogger.Info("stub request", fields...)
		})
	}
}

// Recoverer turns a handler panic into the backend's 500 body,
// {"detail":"Internal server error"}, and logs it against the operation.
// It must run inside RequestLogger so the panic still gets a log line.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			logpkg.FromContext(r.Context()).Error("handler panic",
				zap.String("op", metrics.RequestInfoFromContext(r.Context()).OperationName()),
				zap.Any("panic", rvr),
				zap.Stack("stacktrace"),
			)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
