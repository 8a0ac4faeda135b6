package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestSignupRequiresNameEmailPassword(t *testing.T) {
	handler := Signup(nil, "secret", time.Hour)

	tests := []string{
		`{}`,
		`{"name":"A"}`,
		`{"name":"A","email":"a@x.com"}`,
		`{"email":"a@x.com","password":"pw"}`,
		`{"name":"  ","email":"a@x.com","password":"pw"}`,
	}
	for _, body := range tests {
		if w := postJSON(t, handler, body); w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestSignupRejectsMalformedBody(t *testing.T) {
	handler := Signup(nil, "secret", time.Hour)
	if w := postJSON(t, handler, `{"name":`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	handler := Login(nil, "secret", time.Hour)

	tests := []string{
		`{}`,
		`{"email":"a@x.com"}`,
		`{"password":"pw"}`,
		`{"email":"  ","password":"pw"}`,
	}
	for _, body := range tests {
		if w := postJSON(t, handler, body); w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}
