package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
	"github.com/polkiloo/delivery/internal/metrics"
	testhelpers "github.com/polkiloo/delivery/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

func serveWithAuth(resolver CallerResolver, header string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(AuthRequired(resolver, discard))
	router.GET("/", handler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAuthRequired(t *testing.T) {
	noop := func(c *gin.Context) { c.Status(http.StatusOK) }

	resp := serveWithAuth(testhelpers.CallerResolverStub{}, "", noop)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
	if resp.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("expected bearer challenge")
	}
	if !strings.Contains(resp.Body.String(), notAuthenticated) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}

	resp = serveWithAuth(testhelpers.CallerResolverStub{}, "Basic abc", noop)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", resp.Code)
	}

	resp = serveWithAuth(testhelpers.CallerResolverStub{Err: domainErrors.ErrUnauthorized}, "Bearer token", noop)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), invalidCredentials) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}

	resp = serveWithAuth(testhelpers.CallerResolverStub{Err: context.DeadlineExceeded}, "Bearer token", noop)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var stored *model.User
	var gotToken string
	resolver := testhelpers.CallerResolverStub{ResolveFn: func(ctx context.Context, token string) (*model.User, error) {
		gotToken = token
		return &model.User{ID: 42}, nil
	}}
	resp = serveWithAuth(resolver, "bearer abc.def", func(c *gin.Context) {
		if v, ok := c.Get(CallerContextKey); ok {
			stored = v.(*model.User)
		}
		c.Status(http.StatusOK)
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotToken != "abc.def" {
		t.Fatalf("expected token to be passed through, got %q", gotToken)
	}
	if stored == nil || stored.ID != 42 {
		t.Fatalf("expected caller 42, got %+v", stored)
	}
}

func TestExtractToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
	c.Request.Header.Set("Authorization", "Bearer ")
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token for bare scheme, got %q", token)
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := resp.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected generated uuid, got %q", generated)
	}
	if seen != generated {
		t.Fatalf("expected context id %q to match header %q", seen, generated)
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Header().Get(RequestIDHeader) != incoming {
		t.Fatalf("expected incoming id to be reused")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Header().Get(RequestIDHeader) == "not-a-uuid" {
		t.Fatalf("expected malformed id to be replaced")
	}
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/orders/pedido/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/orders/pedido/1", "/orders/pedido/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP delivery_http_requests_total Total number of HTTP requests.
# TYPE delivery_http_requests_total counter
delivery_http_requests_total{method="GET",route="/orders/pedido/:id",status="200"} 2
delivery_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "delivery_http_requests_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("payload"))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest())
	var body string
	router.POST("/", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader(buf.Bytes())))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != "payload" {
		t.Fatalf("expected decompressed payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader([]byte("plain"))))
	resp = httptest.NewRecorder()
	body = ""
	router.ServeHTTP(resp, req)
	if body != "plain" {
		t.Fatalf("expected plain body, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not gzip")))
	req.Header.Set("Content-Encoding", "gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed gzip, got %d", resp.Code)
	}
}

func TestCompress(t *testing.T) {
	router := gin.New()
	router.Use(Compress("/raw"))
	payload := strings.Repeat("a", 2048)
	router.GET("/zipped", func(c *gin.Context) { c.String(http.StatusOK, payload) })
	router.GET("/raw", func(c *gin.Context) { c.String(http.StatusOK, payload) })

	req := httptest.NewRequest(http.MethodGet, "/zipped", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response")
	}

	req = httptest.NewRequest(http.MethodGet, "/raw", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Header().Get("Content-Encoding") == "gzip" {
		t.Fatalf("expected excluded path to be served uncompressed")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	line := buf.String()
	if !strings.Contains(line, `"msg":"http request"`) || !strings.Contains(line, `"request_id":"`) {
		t.Fatalf("expected request to be logged with id, got %s", line)
	}
	if !strings.Contains(line, `"level":"INFO"`) {
		t.Fatalf("expected info level, got %s", line)
	}

	buf.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Fatalf("expected error level for 5xx, got %s", buf.String())
	}
}
