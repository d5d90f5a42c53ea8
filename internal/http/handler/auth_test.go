package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogin_NoVerifiedClaims(t *testing.T) {
	h := &AuthHandler{}
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/api/login", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
