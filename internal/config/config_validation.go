// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package config

import "time"

// Defaults applied to fields no configuration source set.
const (
	DefaultHTTPAddress    = ":8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultTokenIssuer    = "organizer-sync"
	DefaultTokenDuration  = time.Hour
	DefaultServerName     = "organizer-sync"
	DefaultVersion        = "dev"
)

// applyDefaults fills fields that stayed zero after merging all sources.
// Secrets have no defaults; validate rejects them when missing.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.ServerName == "" {
		cfg.App.ServerName = DefaultServerName
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
}

// validate checks that the final merged [StructuredConfig] satisfies the
// startup invariants: a database to connect to and a secret to sign tokens
// with. Everything else has a usable default.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
