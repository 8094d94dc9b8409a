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

// Package export drives the per-collection pipeline: read the source catalog,
// index media, match and transform per game, write the destination gamelist.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/GamelistProject/gamelist-export/pkg/catalog"
	"github.com/GamelistProject/gamelist-export/pkg/config"
	"github.com/GamelistProject/gamelist-export/pkg/gamelist"
	"github.com/GamelistProject/gamelist-export/pkg/media"
)

// ErrNoCollections is returned before any I/O when the configuration names
// nothing to export.
var ErrNoCollections = errors.New("no collections configured")

// Stats accumulates run-level counters across all collections.
type Stats struct {
	CollectionsWritten int
	CollectionsFailed  int
	// RecordsRead counts every game entry seen in source catalogs, including
	// incomplete ones.
	RecordsRead int
	// RecordsRetained counts records that survived required-field checks and
	// the favorites/recents filters.
	RecordsRetained int
	// RecordsSkipped counts entries dropped for missing required fields.
	RecordsSkipped int
	MediaMatched   int
	// MediaUnresolved counts essential categories where candidate files
	// existed but none matched, plus transform failures in any category. A
	// match miss in a non-essential category goes uncounted, as does any
	// category whose source directory is absent.
	MediaUnresolved int
}

// Exporter runs one export pass over the configured collections. Collections
// are processed strictly sequentially; a failure in one is reported and the
// next is processed, so partial failures never corrupt unrelated output.
type Exporter struct {
	fsys        afero.Fs
	clock       clockwork.Clock
	transformer *media.Transformer
	cfg         config.Values
	schema      gamelist.Schema
}

func New(cfg config.Values, fsys afero.Fs, clock clockwork.Clock) (*Exporter, error) {
	schema, err := gamelist.SchemaByName(cfg.Schema)
	if err != nil {
		return nil, err
	}
	return &Exporter{
		cfg:    cfg,
		schema: schema,
		fsys:   fsys,
		clock:  clock,
		transformer: media.NewTransformer(fsys, media.TransformOptions{
			ConvertImages: cfg.ConvertImages,
			CopyMedia:     cfg.CopyMedia,
			ReduceImages:  cfg.ReduceImages,
			MaxDimension:  schema.MaxImageDim,
		}),
	}, nil
}

// Run exports every configured collection and returns the accumulated stats.
func (e *Exporter) Run() (Stats, error) {
	if len(e.cfg.Collections) == 0 {
		return Stats{}, ErrNoCollections
	}

	var cutoff time.Time
	if e.cfg.RecentsOnly {
		cutoff = e.clock.Now().AddDate(0, 0, -e.cfg.RecentDays)
		log.Info().Msgf("exporting games added since %s", cutoff.Format("2006-01-02"))
	}

	var stats Stats
	for _, col := range e.cfg.Collections {
		log.Info().Msgf("processing %s -> %s", col.Source, col.Output)
		if err := e.exportCollection(&col, cutoff, &stats); err != nil {
			log.Error().Err(err).Msgf("collection %s failed", col.Source)
			stats.CollectionsFailed++
			continue
		}
		stats.CollectionsWritten++
	}

	log.Info().Msgf("created %d gamelists and resolved %d media files from %d games",
		stats.CollectionsWritten, stats.MediaMatched, stats.RecordsRetained)
	return stats, nil
}

func (e *Exporter) exportCollection(col *config.Collection, cutoff time.Time, stats *Stats) error {
	catalogPath := filepath.Join(e.cfg.LibraryDir, "Data", "Platforms", col.Source+".xml")
	records, skipped, err := catalog.ReadPlatform(e.fsys, catalogPath)
	if err != nil {
		return err
	}
	stats.RecordsRead += len(records) + skipped
	stats.RecordsSkipped += skipped

	retained := e.filterRecords(records, cutoff)
	stats.RecordsRetained += len(retained)

	outDir := filepath.Join(e.cfg.OutputDir, col.Output)
	if err := e.fsys.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	indices := make([]media.Index, len(e.schema.Categories))
	for i := range e.schema.Categories {
		spec := &e.schema.Categories[i]
		index, err := media.BuildIndex(e.fsys, spec.SourcePath(e.cfg.LibraryDir, col.Source))
		if err != nil {
			log.Warn().Err(err).Msgf("indexing %s media failed, treating as empty", spec.Category)
		}
		indices[i] = index
	}

	for i := range retained {
		e.resolveMedia(&retained[i], indices, outDir, stats)
	}

	if err := gamelist.Write(e.fsys, filepath.Join(outDir, e.schema.CatalogFile), retained, &e.schema); err != nil {
		return err
	}
	log.Info().Msgf("exported %d games for %s", len(retained), col.Source)
	return nil
}

func (e *Exporter) filterRecords(records []catalog.GameRecord, cutoff time.Time) []catalog.GameRecord {
	var retained []catalog.GameRecord
	for i := range records {
		if e.cfg.FavoritesOnly && records[i].Attributes[catalog.AttrFavorite] != "true" {
			continue
		}
		if e.cfg.RecentsOnly && !addedSince(&records[i], cutoff) {
			continue
		}
		retained = append(retained, records[i])
	}
	return retained
}

// resolveMedia fills the record's media references, one per schema category.
// Unmatched and failed categories get an empty reference; failures scoped to
// one file are counted and never abort the collection.
func (e *Exporter) resolveMedia(record *catalog.GameRecord, indices []media.Index, outDir string, stats *Stats) {
	for i := range e.schema.Categories {
		spec := &e.schema.Categories[i]

		srcPath, ok := indices[i].Match(record.Title)
		if !ok {
			record.MediaRefs[spec.XMLTag] = ""
			// An absent media directory is expected and stays quiet; a
			// populated one with no match for an essential category is
			// worth a warning.
			if spec.Essential && len(indices[i]) > 0 {
				log.Warn().Msgf("no %s found for %q", spec.Category, record.Title)
				stats.MediaUnresolved++
			}
			continue
		}

		destDir := filepath.Join(outDir, spec.OutputSubdir)
		ref, err := e.transformer.Transform(srcPath, destDir, record.ROMBasename(), spec.Policy)
		if err != nil {
			log.Warn().Err(err).Msgf("could not place %s for %q", spec.Category, record.Title)
			record.MediaRefs[spec.XMLTag] = ""
			stats.MediaUnresolved++
			continue
		}
		record.MediaRefs[spec.XMLTag] = ref
		stats.MediaMatched++
	}
}

// addedSince reports whether a record's added timestamp parses and is on or
// after the cutoff. Records without a usable timestamp are excluded when the
// recents filter is active.
func addedSince(record *catalog.GameRecord, cutoff time.Time) bool {
	raw, ok := record.Attributes[catalog.AttrDateAdded]
	if !ok {
		return false
	}
	added, ok := parseDateAdded(raw)
	return ok && !added.Before(cutoff)
}

func parseDateAdded(value string) (time.Time, bool) {
	clean := strings.TrimSuffix(strings.TrimSpace(value), "Z")
	if i := strings.Index(clean, "."); i >= 0 {
		clean = clean[:i]
	}
	layout := "2006-01-02"
	if strings.Contains(clean, "T") {
		layout = "2006-01-02T15:04:05"
	}
	t, err := time.Parse(layout, clean)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
