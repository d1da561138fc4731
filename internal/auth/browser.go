// Package auth provides interactive provider authentication flows: a PKCE
// browser flow for OpenRouter, guided manual key entry for Google Gemini,
// and the first-run setup wizard.
package auth

import (
	"os/exec"

	"github.com/rs/zerolog/log"
)

// OpenBrowser tries to open rawURL in the default browser. Returns false in
// headless environments so callers can print the URL instead.
func OpenBrowser(rawURL string) bool {
	cmds := [][]string{
		{"xdg-open", rawURL},
		{"open", rawURL},
		{"cmd", "/c", "start", rawURL},
	}
	for _, c := range cmds {
		path, err := exec.LookPath(c[0])
		if err != nil {
			continue
		}
		if err := exec.Command(path, c[1:]...).Start(); err == nil {
			return true
		}
		log.Debug().Str("opener", c[0]).Msg("browser opener failed to start")
	}
	return false
}
