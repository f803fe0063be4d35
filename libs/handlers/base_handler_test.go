package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBaseHandler_Respond(t *testing.T) {
	h := &BaseHandler{Logger: zap.NewNop()}

	t.Run("error", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RespondError(w, http.StatusConflict, "Username already exists")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"error":"Username already exists"}`, w.Body.String())
	})

	t.Run("message", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RespondMessage(w, http.StatusOK, "User deleted successfully")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"User deleted successfully"}`, w.Body.String())
	})
}

func TestBaseHandler_DecodeJSON(t *testing.T) {
	h := &BaseHandler{Logger: zap.NewNop()}
	var dst struct {
		Username string `json:"username"`
	}

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice"}`))
	require.NoError(t, h.DecodeJSON(req, &dst))
	assert.Equal(t, "alice", dst.Username)

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(``))
	assert.ErrorIs(t, h.DecodeJSON(req, &dst), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":`))
	err := h.DecodeJSON(req, &dst)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"`+strings.Repeat("a", 64)+`"}`))
	req.ContentLength = -1
	req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, 16)
	err = h.DecodeJSON(req, &dst)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.NotErrorIs(t, err, ErrEmptyBody)
}
