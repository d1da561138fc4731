// Package creds persists provider credentials in a line-oriented .env file.
//
// DESIGN: The credential file is the only durable store shared across
// sessions. Writes are whole-file read-modify-write upserts that keep
// unrelated lines and comments in place. I/O failures are logged and
// swallowed; persistence is best-effort and must never block the
// conversation loop.
package creds

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Write upserts a KEY=VALUE line in the .env file at path.
// An existing line for key is replaced in place; otherwise the line is
// appended. The file is created (with its parent directory) if absent and
// always ends with exactly one trailing newline.
func Write(path, key, value string) {
	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Str("file", path).Msg("credential file read failed")
		return
	}

	var lines []string
	if len(raw) > 0 {
		lines = strings.Split(string(raw), "\n")
	}

	found := false
	for i, line := range lines {
		if lineKey(line) == key {
			lines[i] = key + "=" + value
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, key+"="+value)
	}

	writeLines(path, lines)
	log.Debug().Str("key", key).Str("file", path).Msg("credential saved")
}

// Clear removes every line whose key matches any of keys.
// A missing file or a file containing none of the keys is a no-op.
func Clear(path string, keys ...string) {
	if len(keys) == 0 {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}

	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	lines := strings.Split(string(raw), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if _, ok := drop[lineKey(line)]; ok {
			continue
		}
		kept = append(kept, line)
	}

	writeLines(path, kept)
	log.Debug().Strs("keys", keys).Str("file", path).Msg("credentials cleared")
}

// lineKey extracts the key of a KEY=VALUE line, tolerating leading comment
// markers and whitespace so commented-out entries are still matched.
func lineKey(line string) string {
	stripped := strings.TrimLeft(line, "# \t")
	i := strings.IndexByte(stripped, '=')
	if i < 0 {
		return ""
	}
	return stripped[:i]
}

// writeLines rewrites the file with trailing blank lines stripped and a
// single final newline. Mode 0600: the file holds secrets.
func writeLines(path string, lines []string) {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			log.Debug().Err(err).Str("dir", dir).Msg("credential dir create failed")
			return
		}
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		log.Debug().Err(err).Str("file", path).Msg("credential file write failed")
	}
}

// DefaultPath resolves the credential file location: the JARVIS_ENV_FILE
// override first, then ~/.config/jarvis/.env, then ./.env.
func DefaultPath() string {
	if p := os.Getenv("JARVIS_ENV_FILE"); p != "" {
		return p
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "jarvis", ".env")
	}
	return ".env"
}
