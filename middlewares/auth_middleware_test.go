package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"smelab/backend/utils"
)

const testSecret = "test-secret"

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", Auth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("role")})
	})
	r.GET("/consultant", Auth(testSecret), RequireConsultant(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMissingToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	token, err := utils.GenerateJWT(testSecret, "user-1", "user", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireConsultant(t *testing.T) {
	userToken, _ := utils.GenerateJWT(testSecret, "user-1", "user", time.Hour)
	consultantToken, _ := utils.GenerateJWT(testSecret, "cons-1", "consultant", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/consultant", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user role: expected 403, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/consultant", nil)
	req.Header.Set("Authorization", "Bearer "+consultantToken)
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("consultant role: expected 200, got %d", w.Code)
	}
}
