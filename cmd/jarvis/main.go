// Package main is the entry point for the Jarvis interactive shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"jarvis/internal/creds"
	"jarvis/internal/logging"
	"jarvis/internal/providers"
	"jarvis/internal/repl"
	"jarvis/internal/tui"
)

// loadEnvFiles loads credentials from standard locations. The resolved env
// path wins; a local .env can override for development.
func loadEnvFiles(envPath string) {
	if _, err := os.Stat(envPath); err == nil {
		_ = godotenv.Load(envPath)
	}
	if home, err := os.UserHomeDir(); err == nil {
		configEnv := filepath.Join(home, ".config", "jarvis", ".env")
		if configEnv != envPath {
			if _, err := os.Stat(configEnv); err == nil {
				_ = godotenv.Load(configEnv)
			}
		}
	}
	_ = godotenv.Load()
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	envPath := flag.String("env", "", "path to the credentials env file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("jarvis " + tui.Version)
		return
	}

	logging.Setup(*debug)

	path := *envPath
	if path == "" {
		path = creds.DefaultPath()
	}
	loadEnvFiles(path)

	env := creds.OSEnv{}

	spin := tui.StartupSpinner()
	chain, err := providers.Build(context.Background(), env)
	spin.Stop()

	if err != nil || len(chain) == 0 {
		log.Debug().Err(err).Msg("no provider chain at startup, running wizard")
		if err := repl.RunWizardAndRetry(path, env); err != nil {
			tui.PrintError(fmt.Sprintf("fatal: %v", err))
			os.Exit(1)
		}
		return
	}

	if err := repl.Run(chain, path, env); err != nil {
		tui.PrintError(fmt.Sprintf("fatal: %v", err))
		os.Exit(1)
	}
}
