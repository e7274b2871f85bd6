package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/quizapi/internal/app/models/dto"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorRouter(err error) *gin.Engine {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })
	return r
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"not found", fmt.Errorf("svc: %w", apperrors.ErrQuizNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "quiz not found"},
		{"validation", apperrors.NewValidationError("limit_end must be greater than zero"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "limit_end must be greater than zero"},
		{"conflict", fmt.Errorf("create: %w", apperrors.ErrUsernameAlreadyExists), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "username already exists"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid username or password"},
		{"forbidden", apperrors.NewForbiddenError("admins only"), http.StatusForbidden, dto.ErrorCodeForbidden, "admins only"},
		{"internal", errors.New("pq: connection refused at 10.0.0.1"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			errorRouter(tt.err).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success || body.Error == nil || body.Error.Code != tt.code || body.Error.Message != tt.message {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
		})
	}
}

func TestHandleAPIErrorDoesNotLeakInternals(t *testing.T) {
	w := httptest.NewRecorder()
	errorRouter(errors.New("secret dsn postgres://u:p@db")).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(w.Body.String(), "postgres://") {
		t.Fatalf("internal detail leaked: %s", w.Body.String())
	}
}

func authRouter(t *testing.T, svc *auth.JWTService) *gin.Engine {
	t.Helper()
	m := NewAuthMiddleware(svc)
	r := gin.New()
	r.GET("/admin", m.JWTAuth(), m.RoleRequired("ADMIN"), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestJWTAuthAndRoleRequired(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "quizapi"})
	r := authRouter(t, svc)

	adminToken, _, _ := svc.GenerateAccessToken(1, "root", "ADMIN")
	studentToken, _, _ := svc.GenerateAccessToken(2, "stu", "STUDENT")

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"bad format", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"student", "Bearer " + studentToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	// another client has its own bucket
	if !rl.Allow("198.51.100.7") {
		t.Fatal("second client should be allowed")
	}

	rl.evict(time.Now().Add(4 * time.Hour))
	if len(rl.visitors) != 0 {
		t.Fatalf("expected idle visitors evicted, %d left", len(rl.visitors))
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !rl.Allow("x") {
			t.Fatal("disabled limiter rejected a request")
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `quizapi_http_requests_total{endpoint="/ping",method="GET",status="200"} 1`) {
		t.Fatalf("request counter missing from exposition:\n%s", w.Body.String())
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	var buf strings.Builder
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(buf.String(), `"status":418`) || !strings.Contains(buf.String(), `"path":"/x"`) {
		t.Fatalf("unexpected log line %q", buf.String())
	}
}

func TestRegisterValidators(t *testing.T) {
	if err := RegisterValidators(); err != nil {
		t.Fatal(err)
	}

	type body struct {
		Difficulty string `json:"difficulty" binding:"required,difficulty"`
		Role       string `json:"role" binding:"omitempty,role"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var b body
		if err := c.ShouldBindJSON(&b); err != nil {
			HandleBindingError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	cases := map[string]int{
		`{"difficulty":"medium"}`:               http.StatusNoContent,
		`{"difficulty":"HARD","role":"admin"}`:  http.StatusNoContent,
		`{"difficulty":"extreme"}`:              http.StatusBadRequest,
		`{"difficulty":"easy","role":"wizard"}`: http.StatusBadRequest,
		`{"difficulty":`:                        http.StatusBadRequest,
	}
	for payload, want := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("payload %s: status = %d, want %d", payload, w.Code, want)
		}
	}
}
