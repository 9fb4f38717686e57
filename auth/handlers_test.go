package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginRecorder(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleLogin()(rec, req)
	return rec
}

func TestHandleLogin(t *testing.T) {
	repo := &fakeRepo{identities: map[string]*Identity{
		"alice": storedIdentity(t, "alice", "s3cret", true),
	}}
	svc, _ := newTestService(t, repo)
	handlers := NewHandlers(svc)

	t.Run("success returns token payload", func(t *testing.T) {
		rec := loginRecorder(t, handlers, `{"username":"alice","password":"s3cret"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var res struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Data    struct {
				AccessToken string `json:"access_token"`
				TokenType   string `json:"token_type"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.True(t, res.Success)
		assert.NotEmpty(t, res.Message)
		assert.NotEmpty(t, res.Data.AccessToken)
		assert.Equal(t, "Bearer", res.Data.TokenType)
	})

	t.Run("wrong password and unknown user look identical", func(t *testing.T) {
		wrongPass := loginRecorder(t, handlers, `{"username":"alice","password":"wrong"}`)
		unknown := loginRecorder(t, handlers, `{"username":"bob","password":"anything"}`)

		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, wrongPass.Code, unknown.Code)
		assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())

		// Failure envelopes never carry a payload.
		var res map[string]any
		require.NoError(t, json.Unmarshal(wrongPass.Body.Bytes(), &res))
		assert.Equal(t, false, res["success"])
		assert.NotContains(t, res, "data")
	})

	t.Run("missing fields rejected before lookup", func(t *testing.T) {
		rec := loginRecorder(t, handlers, `{"username":"alice"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid body rejected", func(t *testing.T) {
		rec := loginRecorder(t, handlers, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
