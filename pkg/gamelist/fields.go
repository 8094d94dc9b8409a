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
	"fmt"
	"strconv"
	"strings"
)

// ConvertRating rescales a source 0-10 integer star rating to the 0-1 decimal
// scale the destination schema expects. The result is the shortest decimal
// representation: "8" becomes "1.6", "0" becomes "0".
func ConvertRating(value string) (string, error) {
	stars, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("invalid rating %q: %w", value, err)
	}
	return strconv.FormatFloat(float64(stars)*2/10, 'f', -1, 64), nil
}

// ConvertReleaseDate reformats a source "YYYY-MM-DD[Thh:mm:ss]" date into the
// destination "YYYYMMDDT000000" form. The time-of-day portion is discarded.
func ConvertReleaseDate(value string) string {
	date, _, _ := strings.Cut(strings.ReplaceAll(value, "-", ""), "T")
	return date + "T000000"
}

// ConvertPlayers rewrites a max-player count with a leading zero, which the
// source library uses for "unknown", to the literal "1+". Other values pass
// through unchanged.
func ConvertPlayers(value string) string {
	if strings.HasPrefix(value, "0") {
		return "1+"
	}
	return value
}
