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
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GamelistProject/gamelist-export/pkg/catalog"
)

const fixGamelist = `<gameList>
    <game>
        <path>./Pac-Mania.a78</path>
        <name>Pac-Mania</name>
    </game>
    <game>
        <path>./Asteroids.a78</path>
        <name>Asteroids</name>
    </game>
</gameList>
`

func writeGamesJSON(t *testing.T, fsys afero.Fs, path string, games catalog.GamesFile) {
	t.Helper()
	require.NoError(t, catalog.WriteGamesFile(fsys, path, games))
}

func TestTitleFix(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys,
		"/roms/atari7800/gamelist.xml", []byte(fixGamelist), 0o644))
	writeGamesJSON(t, fsys, "/roms/Games.json", catalog.GamesFile{
		"atari7800": {
			"pacmania": {
				"RomName": "Pac-Mania.a78",
				"Name":    "pac mania [rev a]",
				"Crc32":   "deadbeef",
			},
			"asteroids": {
				"RomName": "Asteroids.a78",
				"Name":    "Asteroids",
			},
		},
	})

	updated, err := TitleFix(fsys, "/roms/Games.json", "/roms", "gamelist.xml")
	require.NoError(t, err)
	assert.Equal(t, 1, updated, "names already matching are left alone")

	games, err := catalog.ReadGamesFile(fsys, "/roms/Games.json")
	require.NoError(t, err)
	assert.Equal(t, "Pac-Mania", games["atari7800"]["pacmania"]["Name"])
	assert.Equal(t, "deadbeef", games["atari7800"]["pacmania"]["Crc32"],
		"unrelated fields survive the rewrite")
	assert.Equal(t, "Asteroids", games["atari7800"]["asteroids"]["Name"])
}

func TestTitleFixWritesFlattened(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys,
		"/roms/atari7800/gamelist.xml", []byte(fixGamelist), 0o644))
	writeGamesJSON(t, fsys, "/roms/Games.json", catalog.GamesFile{
		"atari7800": {
			"pacmania": {"RomName": "Pac-Mania.a78", "Name": "old"},
		},
	})

	_, err := TitleFix(fsys, "/roms/Games.json", "/roms", "gamelist.xml")
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "/roms/Games.json")
	require.NoError(t, err)
	assert.NotContains(t, strings.TrimRight(string(data), "\n"), "\n",
		"the rewritten file stays on a single line")
}

func TestTitleFixNoChangesLeavesFileAlone(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys,
		"/roms/atari7800/gamelist.xml", []byte(fixGamelist), 0o644))

	// Hand-written file with formatting the tool would not produce.
	original := []byte("{\n  \"atari7800\": {\"pacmania\": {\"RomName\": \"Pac-Mania.a78\", \"Name\": \"Pac-Mania\"}}\n}\n")
	require.NoError(t, afero.WriteFile(fsys, "/roms/Games.json", original, 0o644))

	updated, err := TitleFix(fsys, "/roms/Games.json", "/roms", "gamelist.xml")
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	data, err := afero.ReadFile(fsys, "/roms/Games.json")
	require.NoError(t, err)
	assert.Equal(t, original, data, "untouched file is not rewritten")
}

func TestTitleFixSkipsPlatformsWithoutGamelist(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys,
		"/roms/atari7800/gamelist.xml", []byte(fixGamelist), 0o644))
	require.NoError(t, fsys.MkdirAll("/roms/megadrive", 0o750))
	writeGamesJSON(t, fsys, "/roms/Games.json", catalog.GamesFile{
		"atari7800": {
			"pacmania": {"RomName": "Pac-Mania.a78", "Name": "old"},
		},
		"megadrive": {
			"sonic": {"RomName": "Sonic.md", "Name": "sonic"},
		},
	})

	updated, err := TitleFix(fsys, "/roms/Games.json", "/roms", "gamelist.xml")
	require.NoError(t, err, "a platform directory without a gamelist is skipped")
	assert.Equal(t, 1, updated)

	games, err := catalog.ReadGamesFile(fsys, "/roms/Games.json")
	require.NoError(t, err)
	assert.Equal(t, "sonic", games["megadrive"]["sonic"]["Name"])
}

func TestTitleFixMissingGamesFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	_, err := TitleFix(fsys, "/roms/Games.json", "/roms", "gamelist.xml")
	assert.Error(t, err)
}
