// Gamelist Export
// Copyright (c) 2025 The Gamelist Export Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Gamelist Export.
//
// Gamelist Export is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gamelist Export is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gamelist Export.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the static export configuration. The configuration is
// read once at startup and passed into the exporter by value; nothing re-reads
// it during a run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const (
	// CfgEnv overrides the config file location.
	CfgEnv  = "GAMELIST_EXPORT_CFG"
	CfgFile = "config.toml"
	AppName = "gamelist-export"
)

// Collection maps one source platform to one destination directory name.
type Collection struct {
	// Source is the platform name in the source library, which is also the
	// catalog filename without extension.
	Source string `toml:"source" validate:"required"`
	// Output is the destination directory name for the collection.
	Output string `toml:"output" validate:"required"`
}

// Values is the full configuration surface.
type Values struct {
	// LibraryDir is the root of the source LaunchBox library.
	LibraryDir string `toml:"library_dir" validate:"required"`
	// OutputDir receives one subdirectory per collection.
	OutputDir string `toml:"output_dir" validate:"required"`
	// Schema selects the destination frontend layout.
	Schema        string       `toml:"schema" validate:"required,oneof=batocera retropie onion"`
	Collections   []Collection `toml:"collections,omitempty" validate:"dive"`
	CopyMedia     bool         `toml:"copy_media"`
	ConvertImages bool         `toml:"convert_images"`
	// ReduceImages downscales converted images to the schema's maximum
	// dimension, for frontends on low-powered hardware. Only takes effect
	// when ConvertImages is set.
	ReduceImages bool `toml:"reduce_images"`
	FavoritesOnly bool         `toml:"favorites_only"`
	RecentsOnly   bool         `toml:"recents_only"`
	// RecentDays is the age cutoff applied when RecentsOnly is set.
	RecentDays   int  `toml:"recent_days" validate:"gte=0"`
	DebugLogging bool `toml:"debug_logging"`
}

var BaseDefaults = Values{
	Schema:        "batocera",
	CopyMedia:     true,
	ConvertImages: true,
	RecentDays:    7,
}

// DefaultPath returns the config file location: the CfgEnv override if set,
// otherwise under the XDG config home.
func DefaultPath() string {
	if p := os.Getenv(CfgEnv); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName, CfgFile)
}

// Load reads and validates a config file over BaseDefaults. A missing file is
// an error: the exporter has no useful zero configuration.
func Load(fsys afero.Fs, path string) (Values, error) {
	vals := BaseDefaults

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return vals, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &vals); err != nil {
		return vals, fmt.Errorf("parsing config %s: %w", path, err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&vals); err != nil {
		return vals, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return vals, nil
}

// Save writes the configuration back out, creating parent directories. Used
// to seed a default config file on first run.
func Save(fsys afero.Fs, path string, vals *Values) error {
	data, err := toml.Marshal(vals)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
