package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"smelab/backend/config"
)

func registerRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", Register(cfg))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRejectsConsultantWithoutCode(t *testing.T) {
	r := registerRouter(config.Config{ConsultantCode: "desk-2026"})
	w := postJSON(t, r, "/api/auth/register",
		`{"email":"c@x.com","password":"pw","confirm_password":"pw","is_consultant":true}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without signup code, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterRejectsConsultantWithWrongCode(t *testing.T) {
	r := registerRouter(config.Config{ConsultantCode: "desk-2026"})
	w := postJSON(t, r, "/api/auth/register",
		`{"email":"c@x.com","password":"pw","confirm_password":"pw","is_consultant":true,"consultant_code":"guess"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with wrong signup code, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterRejectsConsultantWhenSelfServeDisabled(t *testing.T) {
	// empty CONSULTANT_SIGNUP_CODE means no consultant self-registration at all
	r := registerRouter(config.Config{})
	w := postJSON(t, r, "/api/auth/register",
		`{"email":"c@x.com","password":"pw","confirm_password":"pw","is_consultant":true,"consultant_code":""}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when self-serve is disabled, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	r := registerRouter(config.Config{})
	w := postJSON(t, r, "/api/auth/register",
		`{"email":"u@x.com","password":"pw","confirm_password":"other"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on mismatch, got %d", w.Code)
	}
}

func TestRegisterRejectsEmptyEmail(t *testing.T) {
	r := registerRouter(config.Config{})
	w := postJSON(t, r, "/api/auth/register",
		`{"email":"  ","password":"pw","confirm_password":"pw"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on empty email, got %d", w.Code)
	}
}
