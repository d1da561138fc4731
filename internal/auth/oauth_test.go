package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestPKCEPair(t *testing.T) {
	verifier, challenge, err := pkcePair()
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), challenge)

	for _, s := range []string{verifier, challenge} {
		assert.NotContains(t, s, "+")
		assert.NotContains(t, s, "/")
		assert.NotContains(t, s, "=")
	}

	// Fresh randomness per call.
	v2, _, err := pkcePair()
	require.NoError(t, err)
	assert.NotEqual(t, verifier, v2)
}

// browserStub simulates the provider redirect: it validates the authorize
// URL, records the challenge, then hits the loopback callback with a code,
// as a real browser would.
func browserStub(t *testing.T, code string, gotChallenge *string) func(string) bool {
	return func(rawURL string) bool {
		t.Helper()
		u, err := url.Parse(rawURL)
		require.NoError(t, err)
		q := u.Query()
		require.NotEmpty(t, q.Get("code_challenge"))
		require.Equal(t, "S256", q.Get("code_challenge_method"))
		if gotChallenge != nil {
			*gotChallenge = q.Get("code_challenge")
		}

		cb := q.Get("callback_url")
		require.True(t, strings.HasPrefix(cb, "http://localhost:"))

		resp, err := http.Get(cb + "?code=" + url.QueryEscape(code))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return true
	}
}

func TestFlow_EndToEnd(t *testing.T) {
	var gotBody string
	token := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"key":"sk-or-v1-issued"}`))
	}))
	defer token.Close()

	var gotChallenge string
	f := &Flow{
		AuthBase: "https://openrouter.example/auth",
		TokenURL: token.URL,
		Timeout:  5 * time.Second,
		OpenURL:  browserStub(t, "authcode-123", &gotChallenge),
		HTTP:     token.Client(),
		Quiet:    true,
	}

	key, err := f.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-or-v1-issued", key)

	assert.Equal(t, "authcode-123", gjson.Get(gotBody, "code").String())
	assert.Equal(t, "S256", gjson.Get(gotBody, "code_challenge_method").String())

	// The verifier sent in the exchange must hash to the challenge the
	// browser saw.
	verifier := gjson.Get(gotBody, "code_verifier").String()
	require.NotEmpty(t, verifier)
	sum := sha256.Sum256([]byte(verifier))
	assert.Equal(t, gotChallenge, base64.RawURLEncoding.EncodeToString(sum[:]))
}

func TestFlow_ExchangeRejected(t *testing.T) {
	token := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad code","code":"invalid_grant"}}`))
	}))
	defer token.Close()

	f := &Flow{
		AuthBase: "https://openrouter.example/auth",
		TokenURL: token.URL,
		Timeout:  5 * time.Second,
		OpenURL:  browserStub(t, "stale-code", nil),
		HTTP:     token.Client(),
		Quiet:    true,
	}

	_, err := f.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad code")
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestFlow_CallbackTimeout(t *testing.T) {
	f := &Flow{
		AuthBase: "https://openrouter.example/auth",
		TokenURL: "http://127.0.0.1:0",
		Timeout:  100 * time.Millisecond,
		OpenURL:  func(string) bool { return true }, // user never completes sign-in
		HTTP:     http.DefaultClient,
		Quiet:    true,
	}

	_, err := f.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestCallbackHandler(t *testing.T) {
	codeCh := make(chan string, 1)
	srv := httptest.NewServer(callbackHandler(codeCh))
	defer srv.Close()

	// Missing code is a client error and delivers nothing.
	resp, err := http.Get(srv.URL + "/callback")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, codeCh)

	// First code is delivered.
	resp, err = http.Get(srv.URL + "/callback?code=first")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A duplicate redirect still gets a friendly page and must not block.
	resp, err = http.Get(srv.URL + "/callback?code=second")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "first", <-codeCh)
}
