package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

func TestRequireAuth_MissingTokenRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	// Token extraction fails before the auth service is consulted, so a nil
	// service is fine for this case.
	am := NewAuthMiddleware(log, nil)

	r := gin.New()
	r.Use(am.RequireAuth())
	r.GET("/api/profile", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}

func TestExtractTokenFromAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{name: "bearer header", header: "Bearer abc123", want: "abc123"},
		{name: "query token wins", header: "Bearer abc123", query: "qtoken", want: "qtoken"},
		{name: "malformed header", header: "abc123", want: ""},
		{name: "empty", want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			target := "/x"
			if tc.query != "" {
				target += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = req

			if got := extractTokenFromAll(c); got != tc.want {
				t.Fatalf("unexpected token: got=%q want=%q", got, tc.want)
			}
		})
	}
}
