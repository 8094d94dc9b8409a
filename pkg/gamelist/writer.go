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

package gamelist

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/GamelistProject/gamelist-export/pkg/catalog"
)

// ErrWriteFailure is returned when the destination catalog cannot be written.
// The records passed in are never mutated, so a caller may retry.
var ErrWriteFailure = errors.New("gamelist write failed")

// Write serializes records into a destination gamelist at path: one <game>
// element per record under a single <gameList> root, one child element per
// present field. Media references are emitted per the schema's empty-element
// policy. Output is indented and carries no XML declaration, matching what
// frontend scrapers themselves produce.
func Write(fsys afero.Fs, path string, records []catalog.GameRecord, schema *Schema) (err error) {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrWriteFailure, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %s", ErrWriteFailure, path, closeErr)
		}
	}()

	enc := xml.NewEncoder(f)
	enc.Indent("", "    ")

	root := xml.StartElement{Name: xml.Name{Local: "gameList"}}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrWriteFailure, path, err)
	}

	for i := range records {
		if err := encodeGame(enc, &records[i], schema); err != nil {
			return fmt.Errorf("%w: %s: %s", ErrWriteFailure, path, err)
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrWriteFailure, path, err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrWriteFailure, path, err)
	}
	if _, err := f.Write([]byte("\n")); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrWriteFailure, path, err)
	}
	return nil
}

func encodeGame(enc *xml.Encoder, record *catalog.GameRecord, schema *Schema) error {
	game := xml.StartElement{Name: xml.Name{Local: "game"}}
	if err := enc.EncodeToken(game); err != nil {
		return err
	}

	if err := encodeField(enc, "path", record.PathRef()); err != nil {
		return err
	}
	if err := encodeField(enc, "name", record.Title); err != nil {
		return err
	}

	for _, field := range []struct {
		attr catalog.Attribute
		tag  string
	}{
		{catalog.AttrDescription, "desc"},
		{catalog.AttrRating, "rating"},
		{catalog.AttrReleaseDate, "releasedate"},
		{catalog.AttrDeveloper, "developer"},
		{catalog.AttrPublisher, "publisher"},
		{catalog.AttrGenre, "genre"},
		{catalog.AttrMaxPlayers, "players"},
	} {
		value, ok := record.Attributes[field.attr]
		if !ok {
			continue
		}
		switch field.attr {
		case catalog.AttrRating:
			converted, err := ConvertRating(value)
			if err != nil {
				log.Debug().Str("game", record.Title).Msgf("dropping unparseable rating %q", value)
				continue
			}
			value = converted
		case catalog.AttrReleaseDate:
			value = ConvertReleaseDate(value)
		case catalog.AttrMaxPlayers:
			value = ConvertPlayers(value)
		}
		if err := encodeField(enc, field.tag, value); err != nil {
			return err
		}
	}

	for i := range schema.Categories {
		tag := schema.Categories[i].XMLTag
		ref, ok := record.MediaRefs[tag]
		if !ok && !schema.EmitEmptyMedia {
			continue
		}
		if err := encodeField(enc, tag, ref); err != nil {
			return err
		}
	}

	return enc.EncodeToken(game.End())
}

func encodeField(enc *xml.Encoder, tag, value string) error {
	return enc.EncodeElement(value, xml.StartElement{Name: xml.Name{Local: tag}})
}
