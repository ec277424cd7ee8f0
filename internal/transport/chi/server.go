package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/domain"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	logpkg "github.com/kailas-cloud/hadithview/internal/logger"
	"github.com/kailas-cloud/hadithview/internal/metrics"
	"github.com/kailas-cloud/hadithview/internal/transport/httpapi"
)

// APIPrefix is where the versioned routes are mounted.
const APIPrefix = "/api/v1"

// opMetrics names the scrape route; every other route uses the client's operation names.
const opMetrics = "metrics"

// Paging limits of GET /books/{id}/hadiths.
const (
	defaultPerPage = 50
	maxPerPage     = 100
)

// errorHandler tries to handle a domain error. Returns true if handled.
// detail is the message for a missing resource, e.g. "Book 3 not found".
type errorHandler func(w http.ResponseWriter, err error, detail string) bool

// errorResponse is the FastAPI-compatible error body the client expects.
type errorResponse struct {
	Detail string `json:"detail"`
}

type booksResponse struct {
	Books []hadith.Book `json:"books"`
}

// searchRequest keeps optional fields as pointers so "absent" and "zero" differ.
type searchRequest struct {
	Query  string  `json:"query"`
	Lang   *string `json:"lang"`
	BookID *int    `json:"book_id"`
	Limit  *int    `json:"limit"`
}

// Server serves a fixture catalog over the same HTTP contract as the real backend.
type Server struct {
	catalog       Catalog
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the stub HTTP API server.
func NewServer(catalog Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{catalog: catalog, logger: logger}
	s.errorHandlers = []errorHandler{
		notFoundHandler,
		sentinelHandler(domain.ErrInvalidInput, http.StatusUnprocessableEntity),
	}
	return s
}

// Mount registers every route on r.
func (s *Server) Mount(r chi.Router) {
	op := metrics.Operation
	r.With(op(httpapi.OpHealth)).Get("/health", s.HealthCheck)
	r.With(op(opMetrics)).Get("/metrics", s.Metrics)
	r.Route(APIPrefix, func(r chi.Router) {
		r.With(op(httpapi.OpSearch)).Post("/search", s.Search)
		r.With(op(httpapi.OpGetHadith)).Get("/hadiths/{id}", s.GetHadith)
		r.With(op(httpapi.OpListBooks)).Get("/books", s.ListBooks)
		r.With(op(httpapi.OpGetBook)).Get("/books/{id}", s.GetBook)
		r.With(op(httpapi.OpListChapters)).Get("/books/{id}/chapters", s.ListChapters)
		r.With(op(httpapi.OpListHadithsByBook)).Get("/books/{id}/hadiths", s.ListBookHadiths)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}

	q, err := searchQueryFromRequest(req)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("", "rejected").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	out, err := s.catalog.Search(r.Context(), q)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("", "error").Inc()
		logpkg.FromContext(r.Context()).Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Search failed: "+err.Error())
		return
	}

	metrics.SearchQueriesTotal.WithLabelValues(string(out.QueryLang), "ok").Inc()
	info := metrics.RequestInfoFromContext(r.Context())
	info.SetQueryLang(string(out.QueryLang))
	info.SetResults(out.Count)
	writeJSON(w, http.StatusOK, out)
}

// GetHadith handles GET /api/v1/hadiths/{id}.
func (s *Server) GetHadith(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := s.catalog.GetHadith(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err, fmt.Sprintf("Hadith %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ListBooks handles GET /api/v1/books.
func (s *Server) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.catalog.ListBooks(r.Context())
	if err != nil {
		s.handleDomainError(w, err, "")
		return
	}
	metrics.RequestInfoFromContext(r.Context()).SetResults(len(books))
	writeJSON(w, http.StatusOK, booksResponse{Books: books})
}

// GetBook handles GET /api/v1/books/{id}.
func (s *Server) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := s.catalog.GetBook(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err, fmt.Sprintf("Book %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// ListChapters handles GET /api/v1/books/{id}/chapters.
// An unknown book yields an empty list, not a 404.
func (s *Server) ListChapters(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := s.catalog.ListChapters(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListBookHadiths handles GET /api/v1/books/{id}/hadiths.
func (s *Server) ListBookHadiths(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	q, err := listQueryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	page, err := s.catalog.ListHadithsByBook(r.Context(), id, q)
	if err != nil {
		s.handleDomainError(w, err, "")
		return
	}
	metrics.RequestInfoFromContext(r.Context()).SetResults(len(page.Results))
	writeJSON(w, http.StatusOK, page)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	total, err := s.catalog.Count(r.Context())
	if err != nil {
		logpkg.FromContext(r.Context()).Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusOK, hadith.Health{
			Status:   "unhealthy",
			Database: "error",
			Error:    err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, hadith.Health{
		Status:       "healthy",
		Database:     "connected",
		TotalHadiths: total,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func searchQueryFromRequest(req searchRequest) (hadith.SearchQuery, error) {
	n := utf8.RuneCountInString(req.Query)
	if n < hadith.MinQueryLength || n > hadith.MaxQueryLength {
		return hadith.SearchQuery{}, fmt.Errorf("query must be between %d and %d characters",
			hadith.MinQueryLength, hadith.MaxQueryLength)
	}

	q := hadith.SearchQuery{Query: req.Query, Limit: hadith.DefaultLimit}
	if req.Lang != nil {
		lang, err := hadith.ParseLang(*req.Lang)
		if err != nil || lang == "" {
			return hadith.SearchQuery{}, fmt.Errorf("lang must be one of en, ar, bn, ur")
		}
		q.Language = lang
	}
	if req.BookID != nil {
		if *req.BookID < 1 {
			return hadith.SearchQuery{}, fmt.Errorf("book_id must be >= 1")
		}
		q.BookID = *req.BookID
	}
	if req.Limit != nil {
		if *req.Limit < 1 || *req.Limit > hadith.MaxLimit {
			return hadith.SearchQuery{}, fmt.Errorf("limit must be between 1 and %d", hadith.MaxLimit)
		}
		q.Limit = *req.Limit
	}
	return q, nil
}

func listQueryFromRequest(r *http.Request) (hadith.ListQuery, error) {
	params := r.URL.Query()
	var chapterID, page, perPage *int

	for name, dest := range map[string]**int{"chapter_id": &chapterID, "page": &page, "per_page": &perPage} {
		if err := runtime.BindQueryParameter("form", true, false, name, params, dest); err != nil {
			return hadith.ListQuery{}, fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	q := hadith.ListQuery{Page: 1, PageSize: defaultPerPage}
	if chapterID != nil {
		q.ChapterID = *chapterID
	}
	if page != nil {
		if *page < 1 {
			return hadith.ListQuery{}, fmt.Errorf("page must be >= 1")
		}
		q.Page = *page
	}
	if perPage != nil {
		if *perPage < 1 || *perPage > maxPerPage {
			return hadith.ListQuery{}, fmt.Errorf("per_page must be between 1 and %d", maxPerPage)
		}
		q.PageSize = *perPage
	}
	return q, nil
}

// pathID binds the {id} route parameter. On failure it writes a 422 and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid id: "+err.Error())
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, _ string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, err.Error())
		return true
	}
}

// notFoundHandler answers ErrNotFound with the caller's resource-specific detail.
func notFoundHandler(w http.ResponseWriter, err error, detail string) bool {
	if !errors.Is(err, domain.ErrNotFound) {
		return false
	}
	if detail == "" {
		detail = "Not Found"
	}
	writeError(w, http.StatusNotFound, detail)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error, detail string) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err, detail) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
