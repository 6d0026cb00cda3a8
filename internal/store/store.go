// Package store persists small pieces of client state between runs.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/budget-keeper/internal/errs"
)

// Well-known keys.
const (
	KeyAccessToken = "access_token"
	KeyLanguage    = "preferred_language"
)

// Supported interface languages.
const (
	LangEnglish = "en"
	LangDutch   = "nl"

	DefaultLanguage = LangEnglish
)

// Store is a string key/value store. Get returns errs.ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ValidLanguage reports whether lang is supported.
func ValidLanguage(lang string) bool { return lang == LangEnglish || lang == LangDutch }

// Language returns the stored preference, DefaultLanguage when missing or unknown.
func Language(ctx context.Context, s Store) (string, error) {
	v, err := s.Get(ctx, KeyLanguage)
	if errors.Is(err, errs.ErrNotFound) {
		return DefaultLanguage, nil
	}
	if err != nil {
		return "", err
	}
	if !ValidLanguage(v) {
		return DefaultLanguage, nil
	}
	return v, nil
}

// SetLanguage validates and stores the language preference.
func SetLanguage(ctx context.Context, s Store, lang string) error {
	if !ValidLanguage(lang) {
		return errs.Validationf("unsupported language %q (want %s or %s)", lang, LangEnglish, LangDutch)
	}
	if err := s.Set(ctx, KeyLanguage, lang); err != nil {
		return fmt.Errorf("store language: %w", err)
	}
	return nil
}
