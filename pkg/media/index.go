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

// Package media matches loosely named media files to game titles and places
// them into a destination layout under normalized filenames.
package media

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"
)

// Index is the pool of candidate files for one media category, sorted
// lexicographically so that first-match results are reproducible across
// filesystems and runs.
type Index []string

// BuildIndex enumerates all regular files under dir recursively. A missing
// directory yields an empty index: a platform without a media category is a
// normal condition, not an error. No extension filtering happens here;
// extensions are interpreted at transform time.
func BuildIndex(fsys afero.Fs, dir string) (Index, error) {
	if _, err := fsys.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var files Index
	err := afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}
