package creds

import "os"

// Environment abstracts process-environment access so the registry and its
// tests can substitute an in-memory map for real process state.
type Environment interface {
	Get(key string) string
	Set(key, value string)
	Unset(key string)
}

// OSEnv is the process environment.
type OSEnv struct{}

func (OSEnv) Get(key string) string { return os.Getenv(key) }
func (OSEnv) Set(key, value string) { _ = os.Setenv(key, value) }
func (OSEnv) Unset(key string)      { _ = os.Unsetenv(key) }

// MapEnv is an in-memory Environment for tests.
type MapEnv map[string]string

func (m MapEnv) Get(key string) string { return m[key] }
func (m MapEnv) Set(key, value string) { m[key] = value }
func (m MapEnv) Unset(key string)      { delete(m, key) }
