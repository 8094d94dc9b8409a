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

package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// GamesFile is a frontend Games.json document: platform key -> ROM key -> game
// entry. Entries keep whatever extra fields the frontend stores; only RomName
// and Name are interpreted.
type GamesFile map[string]map[string]map[string]any

// ReadGamesFile parses a Games.json document. Returns ErrCatalogNotFound if
// the file does not exist and ErrMalformedCatalog on invalid JSON or an
// unexpected top-level shape.
func ReadGamesFile(fsys afero.Fs, path string) (GamesFile, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var games GamesFile
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformedCatalog, path, err)
	}
	return games, nil
}

// WriteGamesFile writes a Games.json document flattened to a single line,
// which is the form the consuming frontend expects.
func WriteGamesFile(fsys afero.Fs, path string, games GamesFile) error {
	data, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
