// Package i18n resolves user-facing strings by key. The store behind the
// translations is external; this package ships a map-backed implementation
// with an English bundle for development and tests.
package i18n

import (
	"fmt"
	"strings"
)

// Translator resolves a key to localized text, interpolating ${name}
// placeholders from vars.
type Translator interface {
	Translate(key string, vars map[string]any) string
}

// Bundle is a map-backed Translator. Missing keys fall back to the key itself
// so broken lookups stay visible instead of blanking messages.
type Bundle struct {
	messages map[string]string
}

// NewBundle builds a translator over the given message map.
func NewBundle(messages map[string]string) *Bundle {
	return &Bundle{messages: messages}
}

func (b *Bundle) Translate(key string, vars map[string]any) string {
	text, ok := b.messages[key]
	if !ok {
		return key
	}
	for name, value := range vars {
		text = strings.ReplaceAll(text, "${"+name+"}", fmt.Sprintf("%v", value))
	}
	return text
}

// Default returns the built-in English bundle covering the verification flow.
func Default() *Bundle {
	return NewBundle(map[string]string{
		"verification.passed.private":  "Verification passed. Your permissions in the group have been restored.",
		"verification.passed.public":   "${mention} passed the verification in ${seconds}s.",
		"verification.wronged.private": "Wrong answer. You have been removed from the group.",
		"entrance.unity":               "${mention} and ${count} other joining members are being verified. Answer within ${seconds}s or you will be removed.",
		"errors.not_found":             "This verification no longer exists.",
		"errors.target_mismatch":       "This verification is not yours to answer.",
		"errors.already_processed":     "This verification has already been handled.",
		"errors.generic":               "An error occurred while processing your answer. Please contact an administrator.",
	})
}

// AlertKey maps a validation error code string to its message key. Unknown
// codes resolve to the generic alert.
func AlertKey(code string) string {
	switch code {
	case "not_found":
		return "errors.not_found"
	case "target_mismatch":
		return "errors.target_mismatch"
	case "already_processed":
		return "errors.already_processed"
	default:
		return "errors.generic"
	}
}
