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
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamesFileRoundTrip(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	doc := `{
		"mame": {
			"pacmania.zip": {"RomName": "pacmania.zip", "Name": "pacmania", "Core": "mame2003"}
		}
	}`
	require.NoError(t, afero.WriteFile(fsys, "/Games.json", []byte(doc), 0o644))

	games, err := ReadGamesFile(fsys, "/Games.json")
	require.NoError(t, err)
	require.Contains(t, games, "mame")
	assert.Equal(t, "pacmania", games["mame"]["pacmania.zip"]["Name"])

	games["mame"]["pacmania.zip"]["Name"] = "Pac-Mania"
	require.NoError(t, WriteGamesFile(fsys, "/Games.json", games))

	data, err := afero.ReadFile(fsys, "/Games.json")
	require.NoError(t, err)
	assert.NotContains(t, strings.TrimRight(string(data), "\n"), "\n", "output must be flattened to one line")
	assert.Contains(t, string(data), `"Core":"mame2003"`, "unrelated fields must survive the rewrite")

	reread, err := ReadGamesFile(fsys, "/Games.json")
	require.NoError(t, err)
	assert.Equal(t, "Pac-Mania", reread["mame"]["pacmania.zip"]["Name"])
}

func TestReadGamesFileErrors(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	_, err := ReadGamesFile(fsys, "/nope.json")
	assert.ErrorIs(t, err, ErrCatalogNotFound)

	require.NoError(t, afero.WriteFile(fsys, "/bad.json", []byte("{not json"), 0o644))
	_, err = ReadGamesFile(fsys, "/bad.json")
	assert.ErrorIs(t, err, ErrMalformedCatalog)

	require.NoError(t, afero.WriteFile(fsys, "/list.json", []byte(`["a","b"]`), 0o644))
	_, err = ReadGamesFile(fsys, "/list.json")
	assert.ErrorIs(t, err, ErrMalformedCatalog, "top level must be an object keyed by platform")
}
