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

package export

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/GamelistProject/gamelist-export/pkg/catalog"
	"github.com/GamelistProject/gamelist-export/pkg/gamelist"
	"github.com/GamelistProject/gamelist-export/pkg/media"
)

// MediaRename copies the media referenced by existing gamelists into a
// parallel layout where every file is named 1:1 with its ROM. Scraped
// libraries name media after whatever the scraper source used; frontends that
// pair media by filename need the renamed form. Each platform subdirectory
// under romsRoot carries its own catalog; platforms without a readable one
// are skipped with a warning, as is any referenced file that cannot be
// copied. Returns the number of files copied.
func MediaRename(fsys afero.Fs, romsRoot, outputRoot, catalogFile string, schema *gamelist.Schema) (int, error) {
	infos, err := afero.ReadDir(fsys, romsRoot)
	if err != nil {
		return 0, err
	}

	copier := media.NewTransformer(fsys, media.TransformOptions{CopyMedia: true})

	copied := 0
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		platform := info.Name()

		entries, err := gamelist.Read(fsys, filepath.Join(romsRoot, platform, catalogFile))
		if err != nil {
			if errors.Is(err, catalog.ErrCatalogNotFound) {
				log.Warn().Msgf("no %s for platform %s, skipping", catalogFile, platform)
			} else {
				log.Warn().Err(err).Msgf("could not read gamelist for %s, skipping", platform)
			}
			continue
		}

		log.Info().Msgf("copying renamed media for %s", platform)
		platformOut := filepath.Join(outputRoot, platform)
		for i := range entries {
			copied += renameEntryMedia(fsys, copier, &entries[i],
				filepath.Join(romsRoot, platform), platformOut, schema)
		}
	}

	return copied, nil
}

// renameEntryMedia copies each media file one gamelist entry references,
// renamed to the entry's ROM basename, into the category subdirectories the
// schema defines. Entries without a ROM path, and categories without a
// reference, are skipped.
func renameEntryMedia(fsys afero.Fs, copier *media.Transformer, entry *gamelist.Entry,
	platformDir, outDir string, schema *gamelist.Schema,
) int {
	base := strings.TrimPrefix(entry.Path(), "./")
	if base == "" {
		return 0
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}

	copied := 0
	for i := range schema.Categories {
		spec := &schema.Categories[i]

		ref := entry.Fields[spec.XMLTag]
		if ref == "" {
			log.Debug().Msgf("no %s entry for %s", spec.XMLTag, base)
			continue
		}

		srcPath := filepath.Join(platformDir, filepath.FromSlash(strings.TrimPrefix(ref, "./")))
		destDir := filepath.Join(outDir, spec.OutputSubdir)
		if _, err := copier.Transform(srcPath, destDir, base, media.PolicyCopy); err != nil {
			log.Warn().Err(err).Msgf("could not copy %s for %s", spec.XMLTag, base)
			continue
		}
		copied++
	}

	return copied
}
