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

// Package catalog reads source game catalogs into normalized records.
package catalog

import (
	"errors"
	"strings"
)

var (
	// ErrCatalogNotFound is returned when a source catalog does not exist.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrMalformedCatalog is returned when a source catalog cannot be parsed.
	ErrMalformedCatalog = errors.New("malformed catalog")
)

// Attribute names an optional metadata field carried by a GameRecord. Values
// are stored verbatim from the source catalog; destination-specific
// reformatting happens at write time.
type Attribute string

const (
	AttrDescription Attribute = "description"
	AttrRating      Attribute = "rating"
	AttrReleaseDate Attribute = "releaseDate"
	AttrDeveloper   Attribute = "developer"
	AttrPublisher   Attribute = "publisher"
	AttrGenre       Attribute = "genre"
	AttrMaxPlayers  Attribute = "maxPlayers"
	AttrDateAdded   Attribute = "dateAdded"
	AttrFavorite    Attribute = "favorite"
)

// GameRecord is one game from a source catalog, normalized for export.
type GameRecord struct {
	// Identifier is the ROM filename with extension, preserved verbatim from
	// the source so destination path references round-trip.
	Identifier string
	// Title is the display name. May contain characters illegal in filenames.
	Title string
	// Attributes holds optional metadata fields. An absent key means the field
	// is omitted from output, never emitted as empty.
	Attributes map[Attribute]string
	// MediaRefs maps a destination media tag to a relative path reference.
	// Empty string means no media was resolved for that tag. Populated by the
	// export pipeline, not the reader.
	MediaRefs map[string]string
}

// ROMBasename returns the identifier without its file extension, used as the
// base name for renamed media files.
func (r *GameRecord) ROMBasename() string {
	name := r.Identifier
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// PathRef returns the destination catalog path reference for the record.
func (r *GameRecord) PathRef() string {
	return "./" + r.Identifier
}

// baseName returns the final element of a path that may use either Windows or
// Unix separators. Source catalogs are typically written on Windows.
func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
