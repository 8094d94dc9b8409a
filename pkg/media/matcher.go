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

package media

import (
	"path/filepath"
	"strings"
)

// titleSanitizer replaces the characters LaunchBox strips when it names media
// files on disk. Matching is a plain prefix comparison against the sanitized
// title, not fuzzy similarity: the media-producing tool already applied the
// same substitution, so an exact comparison is both correct and deterministic.
var titleSanitizer = strings.NewReplacer(
	":", "_",
	"'", "_",
	"/", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeTitle returns title with filesystem-illegal characters replaced by
// underscores. A title containing none of them is returned unchanged.
func SanitizeTitle(title string) string {
	return titleSanitizer.Replace(title)
}

// Match finds the media file for a game title. It returns the first index
// entry whose basename matches one of the naming conventions:
//
//   - "<title>-0..." numbered variant files, e.g. box art region variants
//   - "<title>.<ext>" a single canonical file with any extension
//   - "<title>.mp4" compared case-insensitively, since video naming is
//     inconsistent in source libraries
//
// At most one match is used per category per game. Titles that collide after
// sanitization match whichever file sorts first in the index.
func (ix Index) Match(title string) (string, bool) {
	sanitized := SanitizeTitle(title)
	sanitizedLower := strings.ToLower(sanitized)

	for _, candidate := range ix {
		name := filepath.Base(candidate)
		if strings.HasPrefix(name, sanitized+"-0") ||
			strings.HasPrefix(name, sanitized+".") ||
			strings.ToLower(name) == sanitizedLower+".mp4" {
			return candidate, true
		}
	}
	return "", false
}
