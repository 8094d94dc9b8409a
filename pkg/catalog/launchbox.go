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
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// lbGame mirrors the subset of a LaunchBox <Game> element the exporter
// consumes. Unknown child elements are ignored by the decoder.
type lbGame struct {
	ApplicationPath string `xml:"ApplicationPath"`
	Title           string `xml:"Title"`
	Notes           string `xml:"Notes"`
	StarRating      string `xml:"StarRating"`
	ReleaseDate     string `xml:"ReleaseDate"`
	Developer       string `xml:"Developer"`
	Publisher       string `xml:"Publisher"`
	Genre           string `xml:"Genre"`
	MaxPlayers      string `xml:"MaxPlayers"`
	DateAdded       string `xml:"DateAdded"`
	Favorite        string `xml:"Favorite"`
}

// ReadPlatform parses a LaunchBox platform XML file into game records. Records
// missing a ROM path or title are skipped and counted, not treated as a
// catalog failure. Returns ErrCatalogNotFound if the file does not exist and
// ErrMalformedCatalog if it cannot be parsed.
func ReadPlatform(fsys afero.Fs, path string) (records []GameRecord, skipped int, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, 0, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing catalog: %w", closeErr)
		}
	}()

	decoder := xml.NewDecoder(f)
	for {
		token, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return nil, 0, fmt.Errorf("%w: %s: %s", ErrMalformedCatalog, path, tokenErr)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "Game" {
			continue
		}

		var game lbGame
		if decodeErr := decoder.DecodeElement(&game, &start); decodeErr != nil {
			return nil, 0, fmt.Errorf("%w: %s: %s", ErrMalformedCatalog, path, decodeErr)
		}

		record, ok := newRecord(&game)
		if !ok {
			skipped++
			log.Debug().Str("catalog", path).Msg("skipping incomplete game entry")
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}

func newRecord(game *lbGame) (GameRecord, bool) {
	identifier := baseName(game.ApplicationPath)
	if identifier == "" || game.Title == "" {
		return GameRecord{}, false
	}

	attrs := make(map[Attribute]string)
	for attr, value := range map[Attribute]string{
		AttrDescription: game.Notes,
		AttrRating:      game.StarRating,
		AttrReleaseDate: game.ReleaseDate,
		AttrDeveloper:   game.Developer,
		AttrPublisher:   game.Publisher,
		AttrGenre:       game.Genre,
		AttrMaxPlayers:  game.MaxPlayers,
		AttrDateAdded:   game.DateAdded,
		AttrFavorite:    game.Favorite,
	} {
		if value != "" {
			attrs[attr] = value
		}
	}

	return GameRecord{
		Identifier: identifier,
		Title:      game.Title,
		Attributes: attrs,
		MediaRefs:  make(map[string]string),
	}, true
}
