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
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/GamelistProject/gamelist-export/pkg/catalog"
	"github.com/GamelistProject/gamelist-export/pkg/gamelist"
)

// TitleFix rewrites the Name fields in a frontend Games.json using the proper
// titles from the gamelists under platformsRoot (one platform subdirectory
// each). Platforms without a readable gamelist are skipped with a warning.
// Returns the number of names updated; the file is only rewritten when at
// least one changed.
func TitleFix(fsys afero.Fs, gamesJSONPath, platformsRoot, catalogFile string) (int, error) {
	games, err := catalog.ReadGamesFile(fsys, gamesJSONPath)
	if err != nil {
		return 0, err
	}

	titles, err := collectTitles(fsys, platformsRoot, catalogFile)
	if err != nil {
		return 0, err
	}
	if len(titles) == 0 {
		log.Warn().Msgf("no titles found in any gamelist under %s", platformsRoot)
		return 0, nil
	}

	updated := 0
	for _, platformGames := range games {
		for _, info := range platformGames {
			romName, _ := info["RomName"].(string)
			name, hasName := info["Name"].(string)
			if romName == "" || !hasName {
				continue
			}
			if title, ok := titles[romName]; ok && title != name {
				info["Name"] = title
				updated++
			}
		}
	}

	if updated == 0 {
		return 0, nil
	}
	if err := catalog.WriteGamesFile(fsys, gamesJSONPath, games); err != nil {
		return updated, err
	}
	return updated, nil
}

// collectTitles maps ROM filename to display title across every platform
// gamelist under root.
func collectTitles(fsys afero.Fs, root, catalogFile string) (map[string]string, error) {
	infos, err := afero.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string)
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}

		listPath := filepath.Join(root, info.Name(), catalogFile)
		entries, err := gamelist.Read(fsys, listPath)
		if err != nil {
			if errors.Is(err, catalog.ErrCatalogNotFound) {
				log.Warn().Msgf("no %s for platform %s, skipping", catalogFile, info.Name())
			} else {
				log.Warn().Err(err).Msgf("could not read gamelist for %s, skipping", info.Name())
			}
			continue
		}

		for i := range entries {
			ref := entries[i].Path()
			title := entries[i].Name()
			if ref == "" || title == "" {
				continue
			}
			// "./pacmania.zip" -> "pacmania.zip"
			titles[path.Base(strings.TrimPrefix(ref, "./"))] = title
		}
	}

	return titles, nil
}
