package chat

import (
	"context"
	"errors"
	"strings"
)

// FailureKind classifies a provider failure for the fallback decision.
type FailureKind int

const (
	FailureOther FailureKind = iota
	FailureAuth
	FailureTimeout
)

func (k FailureKind) String() string {
	switch k {
	case FailureAuth:
		return "auth"
	case FailureTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// authSignatures are matched against lower-cased error text. Providers vary
// in how they report bad credentials, so classification is by string
// signature, not status code alone.
var authSignatures = []string{
	"authenticationerror",
	"401",
	"403",
	"unauthorized",
	"invalid api key",
	"invalid_api_key",
	"api key not valid",
	"no auth credentials",
}

// Classify maps a provider error to a FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureOther
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	text := strings.ToLower(err.Error())
	for _, sig := range authSignatures {
		if strings.Contains(text, sig) {
			return FailureAuth
		}
	}
	if strings.Contains(text, "context deadline exceeded") ||
		strings.Contains(text, "timed out") ||
		strings.Contains(text, "timeout") {
		return FailureTimeout
	}
	return FailureOther
}
