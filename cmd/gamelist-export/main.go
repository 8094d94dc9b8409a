/*
Gamelist Export
Copyright (c) 2025 The Gamelist Export Contributors.

This file is part of Gamelist Export.

Gamelist Export is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Gamelist Export is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Gamelist Export.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/GamelistProject/gamelist-export/pkg/config"
	"github.com/GamelistProject/gamelist-export/pkg/export"
	"github.com/GamelistProject/gamelist-export/pkg/gamelist"
	"github.com/GamelistProject/gamelist-export/pkg/helpers"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String(
		"config",
		config.DefaultPath(),
		"path to config file",
	)
	writeConfig := flag.Bool(
		"write-config",
		false,
		"write a default config file and exit",
	)
	titleFix := flag.String(
		"titlefix",
		"",
		"path to a frontend Games.json to update titles in, instead of exporting",
	)
	renameMedia := flag.String(
		"rename-media",
		"",
		"path to a roms directory whose gamelist media should be copied renamed 1:1 with ROM filenames, instead of exporting",
	)
	flag.Parse()

	fsys := afero.NewOsFs()

	if *writeConfig {
		if err := config.Save(fsys, *configPath, &config.BaseDefaults); err != nil {
			return err
		}
		fmt.Printf("wrote default config to %s\n", *configPath)
		return nil
	}

	cfg, err := config.Load(fsys, *configPath)
	if err != nil {
		return err
	}

	logDir := filepath.Join(xdg.StateHome, config.AppName)
	if err := fsys.MkdirAll(logDir, 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	helpers.InitLogging(logDir, cfg.DebugLogging, zerolog.ConsoleWriter{Out: os.Stderr})

	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", r)
			log.Fatal().Msgf("panic: %v", r)
		}
	}()

	if *titleFix != "" {
		schema, err := gamelist.SchemaByName(cfg.Schema)
		if err != nil {
			return err
		}
		updated, err := export.TitleFix(fsys, *titleFix, cfg.OutputDir, schema.CatalogFile)
		if err != nil {
			return err
		}
		fmt.Printf("updated %d game names in %s\n", updated, *titleFix)
		return nil
	}

	if *renameMedia != "" {
		schema, err := gamelist.SchemaByName(cfg.Schema)
		if err != nil {
			return err
		}
		copied, err := export.MediaRename(fsys, *renameMedia, cfg.OutputDir, schema.CatalogFile, &schema)
		if err != nil {
			return err
		}
		fmt.Printf("copied %d renamed media files to %s\n", copied, cfg.OutputDir)
		return nil
	}

	exporter, err := export.New(cfg, fsys, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	stats, err := exporter.Run()
	if err != nil {
		return err
	}

	fmt.Printf("created %d gamelists and resolved %d media files from %d games\n",
		stats.CollectionsWritten, stats.MediaMatched, stats.RecordsRetained)
	if stats.CollectionsFailed > 0 {
		return fmt.Errorf("%d collection(s) failed, see log for details", stats.CollectionsFailed)
	}
	return nil
}
