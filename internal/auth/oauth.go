package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	openRouterAuthBase = "https://openrouter.ai/auth"
	openRouterTokenURL = "https://openrouter.ai/api/v1/auth/keys"
	openRouterKeysPage = "https://openrouter.ai/keys"

	// callbackTimeout bounds the wait for the browser redirect.
	callbackTimeout = 120 * time.Second
)

// Flow runs the OpenRouter PKCE browser flow: spin up a loopback callback
// server, send the user to the authorize page, then exchange the returned
// code for an API key. Every field has a production default; tests override
// them.
type Flow struct {
	AuthBase string
	TokenURL string
	Timeout  time.Duration
	OpenURL  func(rawURL string) bool
	HTTP     *http.Client

	// Quiet suppresses terminal output (used by tests).
	Quiet bool
}

// NewFlow returns a Flow with production endpoints.
func NewFlow() *Flow {
	return &Flow{
		AuthBase: openRouterAuthBase,
		TokenURL: openRouterTokenURL,
		Timeout:  callbackTimeout,
		OpenURL:  OpenBrowser,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// pkcePair generates a fresh verifier and its S256 challenge. Both are
// URL-safe base64 without padding.
func pkcePair() (verifier, challenge string, err error) {
	b := make([]byte, 48)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}
	verifier = base64.RawURLEncoding.EncodeToString(b)
	sum := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(sum[:])
	return verifier, challenge, nil
}

// Run executes the flow and returns the obtained API key. Any failure is
// returned as an error; the caller decides whether to fall back to manual
// key entry. The verifier never leaves the process except in the exchange
// request.
func (f *Flow) Run(ctx context.Context) (string, error) {
	verifier, challenge, err := pkcePair()
	if err != nil {
		return "", fmt.Errorf("generate pkce pair: %w", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("bind callback listener: %w", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	codeCh := make(chan string, 1)
	srv := &http.Server{Handler: callbackHandler(codeCh)}
	go srv.Serve(ln)
	defer srv.Close()

	callbackURL := fmt.Sprintf("http://localhost:%d/callback", port)
	authURL := fmt.Sprintf("%s?callback_url=%s&code_challenge=%s&code_challenge_method=S256",
		f.AuthBase, url.QueryEscape(callbackURL), challenge)

	log.Debug().Int("port", port).Msg("oauth callback server listening")

	if !f.OpenURL(authURL) && !f.Quiet {
		fmt.Printf("   Could not open browser. Open this URL to continue:\n\n   %s\n\n", authURL)
	}
	if !f.Quiet {
		fmt.Printf("   Waiting for callback on localhost:%d (timeout %ds). Press Ctrl-C to cancel.\n\n",
			port, int(f.Timeout.Seconds()))
	}

	waitCtx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	var code string
	select {
	case code = <-codeCh:
	case <-waitCtx.Done():
		return "", fmt.Errorf("timed out waiting for oauth callback")
	}

	return f.exchange(ctx, code, verifier)
}

// callbackHandler serves GET /callback. The channel has capacity one and the
// send is non-blocking, so duplicate redirects cannot wedge the handler.
func callbackHandler(codeCh chan<- string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `<html><body style="font-family:monospace;background:#0d1117;color:#c9d1d9;padding:2em">`+
			`<h2 style="color:#58a6ff">Authentication successful</h2>`+
			`<p>Your OpenRouter API key has been saved.</p>`+
			`<p>You can close this tab and return to the terminal.</p></body></html>`)
		select {
		case codeCh <- code:
		default:
		}
	})
	return mux
}

// exchange trades the authorization code for an API key.
func (f *Flow) exchange(ctx context.Context, code, verifier string) (string, error) {
	body, _ := sjson.Set("", "code", code)
	body, _ = sjson.Set(body, "code_verifier", verifier)
	body, _ = sjson.Set(body, "code_challenge_method", "S256")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.TokenURL, strings.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg := gjson.GetBytes(raw, "error.message"); msg.Exists() {
			return "", fmt.Errorf("openrouter auth error (%s): %s",
				gjson.GetBytes(raw, "error.code").String(), msg.String())
		}
		return "", fmt.Errorf("openrouter auth error (status %d): %s",
			resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	key := gjson.GetBytes(raw, "key").String()
	if key == "" {
		return "", fmt.Errorf("no key in exchange response")
	}
	return key, nil
}
