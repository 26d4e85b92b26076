package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GarageLink/GarageLink/internal/common/auth"
	"github.com/GarageLink/GarageLink/internal/common/config"
	"github.com/gin-gonic/gin"
)

func newAuthTestRouter(t *testing.T, cfg config.AuthConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(JWTAuth(cfg, nil), RBAC(cfg))
	e.GET("/api/v1/users", func(c *gin.Context) {
		ai, ok := AuthFromContext(c)
		if !ok {
			t.Fatalf("missing auth info in ctx")
		}
		c.JSON(http.StatusOK, gin.H{"subject": ai.Subject})
	})
	e.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return e
}

func TestJWTAuthAndRBAC(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:     true,
		JWTSecret:   "test-secret",
		Issuer:      "garagelink",
		Audience:    "garagelink",
		PublicPaths: []string{"POST /api/v1/auth/login"},
		RBAC: map[string][]string{
			"GET /api/v1/users": {"admin"},
		},
	}
	e := newAuthTestRouter(t, cfg)

	adminToken, _, err := auth.GenerateAccessToken(cfg, "u-1", []string{"clerk", "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d body=%s", w.Code, w.Body.String())
	}

	// 只有 clerk 角色的 token，应被 RBAC 拒绝
	clerkToken, _, err := auth.GenerateAccessToken(cfg, "u-2", []string{"clerk"}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+clerkToken)
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for clerk, got %d", w.Code)
	}

	// 无 token 直接 401
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// 公开路径免鉴权
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for public path, got %d", w.Code)
	}
}
