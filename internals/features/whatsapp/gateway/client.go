package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"ecclesia_backend/internals/features/whatsapp/model"
)

// ErrNotConfigured is returned by every call when WA_GATEWAY_URL is empty.
var ErrNotConfigured = errors.New("whatsapp gateway is not configured")

type SessionState struct {
	Status string `json:"status"`
	QR     string `json:"qr,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// Gateway is the session side of the HTTP WhatsApp gateway.
type Gateway interface {
	StartSession(ctx context.Context, name string) (SessionState, error)
	SessionStatus(ctx context.Context, name string) (SessionState, error)
	Logout(ctx context.Context, name string) error
	Sender
}

// Sender delivers one text message through a connected session.
type Sender interface {
	SendText(ctx context.Context, session, to, text string) (string, error)
}

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NormalizeStatus folds the gateway vocabulary into the session statuses we store.
func NormalizeStatus(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WORKING", "CONNECTED", "OPEN", "READY":
		return model.SessionConnected
	case "SCAN_QR_CODE", "QR", "QRCODE":
		return model.SessionQR
	case "STARTING", "CONNECTING", "INITIALIZING":
		return model.SessionStarting
	default:
		return model.SessionDisconnected
	}
}

type statusBody struct {
	Status string `json:"status"`
	QR     string `json:"qr"`
	Me     *struct {
		ID string `json:"id"`
	} `json:"me"`
}

func (b statusBody) state() SessionState {
	st := SessionState{Status: NormalizeStatus(b.Status), QR: b.QR}
	if b.Me != nil {
		st.Phone = strings.TrimSuffix(b.Me.ID, "@c.us")
	}
	return st
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.BaseURL == "" {
		return ErrNotConfigured
	}
	var body io.Reader
	if in != nil {
		raw, err := sonic.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "gateway %s %s", method, path)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return fmt.Errorf("gateway %s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}
	if out != nil && len(raw) > 0 {
		if err := sonic.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, "decode gateway response")
		}
	}
	return nil
}

func sessionPath(name string, parts ...string) string {
	p := "/sessions/" + url.PathEscape(name)
	for _, s := range parts {
		p += "/" + s
	}
	return p
}

func (c *Client) StartSession(ctx context.Context, name string) (SessionState, error) {
	var out statusBody
	if err := c.do(ctx, http.MethodPost, sessionPath(name, "start"), nil, &out); err != nil {
		return SessionState{}, err
	}
	return out.state(), nil
}

func (c *Client) SessionStatus(ctx context.Context, name string) (SessionState, error) {
	var out statusBody
	if err := c.do(ctx, http.MethodGet, sessionPath(name), nil, &out); err != nil {
		return SessionState{}, err
	}
	return out.state(), nil
}

func (c *Client) Logout(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, sessionPath(name, "logout"), nil, nil)
}

func (c *Client) SendText(ctx context.Context, session, to, text string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	in := map[string]string{"to": to, "text": text}
	if err := c.do(ctx, http.MethodPost, sessionPath(session, "messages"), in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}
