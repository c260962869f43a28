package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/whatsapp/model"
)

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, model.SessionConnected, NormalizeStatus("WORKING"))
	assert.Equal(t, model.SessionQR, NormalizeStatus("scan_qr_code"))
	assert.Equal(t, model.SessionStarting, NormalizeStatus("STARTING"))
	assert.Equal(t, model.SessionDisconnected, NormalizeStatus("STOPPED"))
	assert.Equal(t, model.SessionDisconnected, NormalizeStatus(""))
}

func TestClientStartSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessions/church-1/start", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"SCAN_QR_CODE","qr":"data:image/png;base64,xx"}`))
	}))
	defer srv.Close()

	st, err := NewClient(srv.URL+"/", "secret").StartSession(context.Background(), "church-1")
	require.NoError(t, err)
	assert.Equal(t, model.SessionQR, st.Status)
	assert.Equal(t, "data:image/png;base64,xx", st.QR)
}

func TestClientSessionStatusPhone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"status":"WORKING","me":{"id":"5511999990000@c.us"}}`))
	}))
	defer srv.Close()

	st, err := NewClient(srv.URL, "").SessionStatus(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, model.SessionConnected, st.Status)
	assert.Equal(t, "5511999990000", st.Phone)
}

func TestClientSendText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/s/messages", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "5511999990000", body["to"])
		assert.Equal(t, "hello", body["text"])
		_, _ = w.Write([]byte(`{"id":"wamid.1"}`))
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL, "k").SendText(context.Background(), "s", "5511999990000", "hello")
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("session not connected"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").SendText(context.Background(), "s", "1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "session not connected")
}

func TestClientNotConfigured(t *testing.T) {
	_, err := NewClient("", "").SessionStatus(context.Background(), "s")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
