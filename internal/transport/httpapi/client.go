// Package httpapi is the typed HTTP/JSON client of the hadith search backend.
//
// Every call is an independent fetch: nothing is cached and nothing is retried.
// Failures come back as *domain.TransportError, *domain.RequestError or
// *domain.DecodeError and are never recovered here.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/hadithview/internal/domain"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/version"
)

// maxErrorBody caps how much of a non-2xx body is read for the detail message.
const maxErrorBody = 64 << 10

// Operation names, used in errors, logs and metric labels.
const (
	OpSearch            = "search"
	OpGetHadith         = "get_hadith"
	OpListBooks         = "list_books"
	OpGetBook           = "get_book"
	OpListChapters      = "list_chapters"
	OpListHadithsByBook = "list_hadiths_by_book"
	OpHealth            = "health"
)

// Client talks to one backend. The base URL is fixed at construction.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	apiKey     string
	userAgent  string
	obs        *observer
}

// New creates a Client for baseURL, e.g. "http://localhost:8000/api/v1".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: host is required", baseURL)
	}

	cfg := clientConfig{}
	for _, o := range opts {
		o.apply(&cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{}
	}
	if cfg.userAgent == "" {
		cfg.userAgent = version.UserAgent()
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    u,
		httpClient: cfg.httpClient,
		apiKey:     cfg.apiKey,
		userAgent:  cfg.userAgent,
		obs:        obs,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Search runs POST /search. Results keep backend order.
func (c *Client) Search(ctx context.Context, q hadith.SearchQuery) (hadith.SearchOutcome, error) {
	return fetch[hadith.SearchOutcome](ctx, c, call{
		op:     OpSearch,
		method: http.MethodPost,
		url:    c.endpoint("/search"),
		body:   q,

		required: []string{"results"},
	})
}

// GetHadith runs GET /hadiths/{id}. A missing id fails with an error matching domain.ErrNotFound.
func (c *Client) GetHadith(ctx context.Context, id int) (hadith.Detail, error) {
	p, err := pathParam("id", id)
	if err != nil {
		return hadith.Detail{}, fmt.Errorf("%s: %w", OpGetHadith, err)
	}
	return fetch[hadith.Detail](ctx, c, call{
		op:     OpGetHadith,
		method: http.MethodGet,
		url:    c.endpoint("/hadiths/" + p),

		required: []string{"hadith_id", "ar_text"},
	})
}

// ListBooks runs GET /books.
func (c *Client) ListBooks(ctx context.Context) ([]hadith.Book, error) {
	resp, err := fetch[booksResponse](ctx, c, call{
		op:     OpListBooks,
		method: http.MethodGet,
		url:    c.endpoint("/books"),

		required: []string{"books"},
	})
	if err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// GetBook runs GET /books/{id}.
func (c *Client) GetBook(ctx context.Context, id int) (hadith.Book, error) {
	p, err := pathParam("id", id)
	if err != nil {
		return hadith.Book{}, fmt.Errorf("%s: %w", OpGetBook, err)
	}
	return fetch[hadith.Book](ctx, c, call{
		op:     OpGetBook,
		method: http.MethodGet,
		url:    c.endpoint("/books/" + p),

		required: []string{"book_id", "en_title"},
	})
}

// ListChapters runs GET /books/{id}/chapters.
func (c *Client) ListChapters(ctx context.Context, bookID int) (hadith.ChapterList, error) {
	p, err := pathParam("id", bookID)
	if err != nil {
		return hadith.ChapterList{}, fmt.Errorf("%s: %w", OpListChapters, err)
	}
	return fetch[hadith.ChapterList](ctx, c, call{
		op:     OpListChapters,
		method: http.MethodGet,
		url:    c.endpoint("/books/" + p + "/chapters"),

		required: []string{"chapters"},
	})
}

// ListHadithsByBook runs GET /books/{id}/hadiths. Zero fields of q are not sent.
func (c *Client) ListHadithsByBook(
	ctx context.Context, bookID int, q hadith.ListQuery,
) (hadith.Page[hadith.Summary], error) {
	p, err := pathParam("id", bookID)
	if err != nil {
		return hadith.Page[hadith.Summary]{}, fmt.Errorf("%s: %w", OpListHadithsByBook, err)
	}

	u := c.endpoint("/books/" + p + "/hadiths")
	params := []struct {
		name  string
		value int
	}{
		{"chapter_id", q.ChapterID},
		{"page", q.Page},
		{"per_page", q.PageSize},
	}
	values := url.Values{}
	for _, prm := range params {
		if prm.value == 0 {
			continue
		}
		if err := addQueryParam(values, prm.name, prm.value); err != nil {
			return hadith.Page[hadith.Summary]{}, fmt.Errorf("%s: %w", OpListHadithsByBook, err)
		}
	}
	u.RawQuery = values.Encode()

	return fetch[hadith.Page[hadith.Summary]](ctx, c, call{
		op:     OpListHadithsByBook,
		method: http.MethodGet,
		url:    u,

		required: []string{"results", "total", "page", "pages"},
	})
}

// Health runs GET /health, which lives at the host root rather than under the API prefix.
func (c *Client) Health(ctx context.Context) (hadith.Health, error) {
	return fetch[hadith.Health](ctx, c, call{
		op:     OpHealth,
		method: http.MethodGet,
		url:    c.baseURL.ResolveReference(&url.URL{Path: "/health"}),

		required: []string{"status"},
	})
}

func (c *Client) endpoint(path string) *url.URL {
	return c.baseURL.JoinPath(path)
}

type call struct {
	op     string
	method string
	url    *url.URL
	body   any

	// required keys of the 2xx body; a missing or null key is a decode failure
	required []string
}

type booksResponse struct {
	Books []hadith.Book `json:"books"`
}

func (r booksResponse) Validate() error {
	for i, b := range r.Books {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("books[%d]: %w", i, err)
		}
	}
	return nil
}

// fetch performs one request and decodes a 2xx body into T.
func fetch[T any](ctx context.Context, c *Client, cl call) (out T, err error) {
	requestID := uuid.NewString()
	start := time.Now()
	defer func() { c.obs.observe(cl.op, requestID, start, err) }()

	var body io.Reader = http.NoBody
	if cl.body != nil {
		buf, mErr := json.Marshal(cl.body)
		if mErr != nil {
			return out, fmt.Errorf("%s: encode request: %w", cl.op, mErr)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, cl.url.String(), body)
	if err != nil {
		return out, fmt.Errorf("%s: build request: %w", cl.op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, &domain.TransportError{Op: cl.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return out, &domain.RequestError{
			Op:         cl.op,
			StatusCode: resp.StatusCode,
			Status:     reasonPhrase(resp),
			Detail:     extractDetail(raw),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, &domain.TransportError{Op: cl.op, Err: fmt.Errorf("read body: %w", err)}
	}
	if err := decodeBody(raw, &out, cl.required); err != nil {
		var zero T
		return zero, &domain.DecodeError{Op: cl.op, Err: err}
	}
	return out, nil
}

// reasonPhrase strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func reasonPhrase(resp *http.Response) string {
	if s := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); s != "" && s != resp.Status {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

// extractDetail extracts the "detail" field from a FastAPI-style error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}

// pathParam styles a path parameter the way the generated OpenAPI clients do.
func pathParam(name string, v int) (string, error) {
	s, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, v)
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return s, nil
}

// addQueryParam styles a form query parameter and merges it into values.
func addQueryParam(values url.Values, name string, v int) error {
	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, v)
	if err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return fmt.Errorf("parse parameter %s: %w", name, err)
	}
	for k, vs := range parsed {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	return nil
}
