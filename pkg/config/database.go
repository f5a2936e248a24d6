// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"os"

	"github.com/nasapay/cobranca/pkg/util"
)

type Database struct {
	SQLite *SQLite `yaml:"sqlite" json:"sqlite"`
}

type SQLite struct {
	Path string `yaml:"path" json:"path"`
}

// GetPath prefers the SQLITE_DB_PATH environment variable over the
// configured location.
func (cfg *SQLite) GetPath() string {
	path := os.Getenv("SQLITE_DB_PATH")
	if cfg == nil {
		return path
	}
	return util.Or(path, cfg.Path)
}
