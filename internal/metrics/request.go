package metrics

import (
	"context"
	"net/http"
)

type requestInfoKey struct{}

// RequestInfo describes what a stub request did in terms of the hadith API.
// The outermost middleware puts a mutable pointer into the context, the route
// and handler fill it in, and the middlewares read it after the handler returns.
type RequestInfo struct {
	Op        string // API operation, same names as the client's
	QueryLang string // detected language of a search query
	Results   int    // items returned by search or list
	Counted   bool   // Results is meaningful
}

// ContextWithRequestInfo returns ctx carrying a RequestInfo, reusing one already present.
func ContextWithRequestInfo(ctx context.Context) (context.Context, *RequestInfo) {
	if info := RequestInfoFromContext(ctx); info != nil {
		return ctx, info
	}
	info := &RequestInfo{}
	return context.WithValue(ctx, requestInfoKey{}, info), info
}

// RequestInfoFromContext returns the RequestInfo of ctx, or nil when there is none.
func RequestInfoFromContext(ctx context.Context) *RequestInfo {
	info, _ := ctx.Value(requestInfoKey{}).(*RequestInfo)
	return info
}

// SetResults records how many items a handler returned. Nil-safe.
func (i *RequestInfo) SetResults(n int) {
	if i != nil {
		i.Results, i.Counted = n, true
	}
}

// SetQueryLang records the detected query language. Nil-safe.
func (i *RequestInfo) SetQueryLang(lang string) {
	if i != nil {
		i.QueryLang = lang
	}
}

// OperationName returns the operation, or "unrouted" for requests answered
// before reaching a route (unknown paths, rejected credentials).
func (i *RequestInfo) OperationName() string {
	if i == nil || i.Op == "" {
		return "unrouted"
	}
	return i.Op
}

// Operation is a route middleware naming the API operation the route serves.
func Operation(op string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, info := ContextWithRequestInfo(r.Context())
			info.Op = op
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
