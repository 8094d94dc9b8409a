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
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/GamelistProject/gamelist-export/pkg/catalog"
)

// Entry is one <game> element read back from a destination gamelist. Fields
// holds every child element by tag name, including media references.
type Entry struct {
	Fields map[string]string
}

// Path returns the entry's ROM path reference.
func (e *Entry) Path() string { return e.Fields["path"] }

// Name returns the entry's display title.
func (e *Entry) Name() string { return e.Fields["name"] }

// Read parses a destination gamelist back into entries. It is the inverse of
// Write, used to propagate titles into other frontend catalogs. Returns
// catalog.ErrCatalogNotFound if the file does not exist and
// catalog.ErrMalformedCatalog if it cannot be parsed.
func Read(fsys afero.Fs, path string) (entries []Entry, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("opening gamelist %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	decoder := xml.NewDecoder(f)
	for {
		token, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return nil, fmt.Errorf("%w: %s: %s", catalog.ErrMalformedCatalog, path, tokenErr)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "game" {
			continue
		}

		entry, decodeErr := decodeEntry(decoder, &start)
		if decodeErr != nil {
			return nil, fmt.Errorf("%w: %s: %s", catalog.ErrMalformedCatalog, path, decodeErr)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func decodeEntry(decoder *xml.Decoder, start *xml.StartElement) (Entry, error) {
	entry := Entry{Fields: make(map[string]string)}
	for {
		token, err := decoder.Token()
		if err != nil {
			return entry, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			var content string
			if err := decoder.DecodeElement(&content, &t); err != nil {
				return entry, err
			}
			entry.Fields[t.Name.Local] = content
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return entry, nil
			}
		}
	}
}
