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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const platformXML = `<?xml version="1.0" standalone="yes"?>
<LaunchBox>
  <Game>
    <ApplicationPath>..\Roms\Atari 7800\Pac-Mania.a78</ApplicationPath>
    <Title>Pac-Mania</Title>
    <Notes>Maze chase sequel.</Notes>
    <StarRating>8</StarRating>
    <ReleaseDate>1987-11-01T00:00:00-05:00</ReleaseDate>
    <Developer>Namco</Developer>
    <Publisher>Namco</Publisher>
    <Genre>Maze</Genre>
    <MaxPlayers>02</MaxPlayers>
    <DateAdded>2024-06-01T12:00:00Z</DateAdded>
    <Favorite>true</Favorite>
    <SomeUnknownField>ignored</SomeUnknownField>
  </Game>
  <Game>
    <ApplicationPath>..\Roms\Atari 7800\Asteroids.a78</ApplicationPath>
    <Title>Asteroids</Title>
  </Game>
  <Game>
    <Title>No Path At All</Title>
  </Game>
</LaunchBox>
`

func TestReadPlatform(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/lb/Data/Platforms/Atari 7800.xml", []byte(platformXML), 0o644))

	records, skipped, err := ReadPlatform(fsys, "/lb/Data/Platforms/Atari 7800.xml")
	require.NoError(t, err)
	assert.Equal(t, 1, skipped, "entry without a ROM path should be skipped")
	require.Len(t, records, 2)

	pacmania := records[0]
	assert.Equal(t, "Pac-Mania.a78", pacmania.Identifier)
	assert.Equal(t, "Pac-Mania", pacmania.Title)
	assert.Equal(t, "Pac-Mania", pacmania.ROMBasename())
	assert.Equal(t, "./Pac-Mania.a78", pacmania.PathRef())
	assert.Equal(t, "Maze chase sequel.", pacmania.Attributes[AttrDescription])
	assert.Equal(t, "8", pacmania.Attributes[AttrRating])
	assert.Equal(t, "02", pacmania.Attributes[AttrMaxPlayers])
	assert.Equal(t, "true", pacmania.Attributes[AttrFavorite])

	asteroids := records[1]
	assert.Equal(t, "Asteroids.a78", asteroids.Identifier)
	assert.Empty(t, asteroids.Attributes, "absent fields must not appear as empty values")
}

func TestReadPlatformNotFound(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	_, _, err := ReadPlatform(fsys, "/lb/Data/Platforms/Missing.xml")
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestReadPlatformMalformed(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/lb/broken.xml", []byte("<LaunchBox><Game><Title>x"), 0o644))

	_, _, err := ReadPlatform(fsys, "/lb/broken.xml")
	assert.ErrorIs(t, err, ErrMalformedCatalog)
}

func TestROMBasename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		identifier string
		expected   string
	}{
		{name: "with_extension", identifier: "Pac-Mania.a78", expected: "Pac-Mania"},
		{name: "no_extension", identifier: "Pac-Mania", expected: "Pac-Mania"},
		{name: "dotted_name", identifier: "Super.Game.v1.zip", expected: "Super.Game.v1"},
		{name: "leading_dot", identifier: ".hidden", expected: ".hidden"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			record := GameRecord{Identifier: tt.identifier}
			assert.Equal(t, tt.expected, record.ROMBasename())
		})
	}
}
