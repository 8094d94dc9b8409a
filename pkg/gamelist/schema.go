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

// Package gamelist declares destination frontend schemas and reads and writes
// their gamelist catalogs.
package gamelist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GamelistProject/gamelist-export/pkg/media"
)

// Category is a class of associated game media.
type Category string

const (
	CategoryBoxArt     Category = "box art"
	CategoryScreenshot Category = "screenshot"
	CategoryMarquee    Category = "marquee"
	CategoryManual     Category = "manual"
	CategoryVideo      Category = "video"
)

// CategorySpec binds a media category to one frontend's conventions: where the
// source library keeps the files, which element references them, where they
// land in the output tree, and how they are transformed on the way.
type CategorySpec struct {
	Category Category
	// XMLTag is the gamelist element name referencing this media.
	XMLTag string
	// SourceDir is the search directory relative to the library root, with
	// "{platform}" standing in for the source platform name.
	SourceDir string
	// OutputSubdir is the destination subdirectory under the collection root.
	OutputSubdir string
	Policy       media.Policy
	// Essential marks categories worth a per-game warning when unresolved.
	Essential bool
}

// SourcePath resolves the category's search directory for a platform.
func (s *CategorySpec) SourcePath(libraryRoot, platform string) string {
	rel := strings.ReplaceAll(s.SourceDir, "{platform}", platform)
	return filepath.Join(libraryRoot, filepath.FromSlash(rel))
}

// Schema describes one destination frontend's catalog layout.
type Schema struct {
	Name string
	// CatalogFile is the gamelist filename at the collection root.
	CatalogFile string
	Categories  []CategorySpec
	// EmitEmptyMedia keeps an empty element for unmatched categories instead
	// of omitting it, so consumers see a stable element set per game.
	EmitEmptyMedia bool
	// MaxImageDim bounds the longer edge of converted images when image
	// reduction is enabled. Onion devices want 250px boxart, the other
	// frontends tolerate 500px.
	MaxImageDim int
}

// Batocera supports the full media set.
var Batocera = Schema{
	Name:        "batocera",
	CatalogFile: "gamelist.xml",
	Categories: []CategorySpec{
		{
			Category:     CategoryScreenshot,
			XMLTag:       "image",
			SourceDir:    "images/{platform}/Screenshot - Gameplay",
			OutputSubdir: "screenshots",
			Policy:       media.PolicyConvert,
			Essential:    true,
		},
		{
			Category:     CategoryMarquee,
			XMLTag:       "marquee",
			SourceDir:    "images/{platform}/Clear Logo",
			OutputSubdir: "marquees",
			Policy:       media.PolicyTrim,
			Essential:    true,
		},
		{
			Category:     CategoryBoxArt,
			XMLTag:       "thumbnail",
			SourceDir:    "images/{platform}/Box - Front",
			OutputSubdir: "covers",
			Policy:       media.PolicyConvert,
			Essential:    true,
		},
		{
			Category:     CategoryManual,
			XMLTag:       "manual",
			SourceDir:    "manuals/{platform}",
			OutputSubdir: "manuals",
			Policy:       media.PolicyCopy,
		},
		{
			Category:     CategoryVideo,
			XMLTag:       "video",
			SourceDir:    "videos/{platform}",
			OutputSubdir: "videos",
			Policy:       media.PolicyCopy,
		},
	},
	EmitEmptyMedia: true,
	MaxImageDim:    500,
}

// RetroPie supports a single image per game.
var RetroPie = Schema{
	Name:        "retropie",
	CatalogFile: "gamelist.xml",
	Categories: []CategorySpec{
		{
			Category:     CategoryBoxArt,
			XMLTag:       "image",
			SourceDir:    "images/{platform}/Box - Front",
			OutputSubdir: "images",
			Policy:       media.PolicyConvert,
			Essential:    true,
		},
	},
	EmitEmptyMedia: true,
	MaxImageDim:    500,
}

// Onion is the Miyoo Onion OS variant of the single-image layout.
var Onion = Schema{
	Name:        "onion",
	CatalogFile: "miyoogamelist.xml",
	Categories: []CategorySpec{
		{
			Category:     CategoryBoxArt,
			XMLTag:       "image",
			SourceDir:    "images/{platform}/Box - Front",
			OutputSubdir: "Imgs",
			Policy:       media.PolicyConvert,
			Essential:    true,
		},
	},
	EmitEmptyMedia: true,
	MaxImageDim:    250,
}

// SchemaByName looks up a schema by its config name.
func SchemaByName(name string) (Schema, error) {
	switch name {
	case Batocera.Name:
		return Batocera, nil
	case RetroPie.Name:
		return RetroPie, nil
	case Onion.Name:
		return Onion, nil
	default:
		return Schema{}, fmt.Errorf("unknown schema: %q", name)
	}
}
