// Vestaboard Server
// Copyright (c) 2025 The Vestaboard Server Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Vestaboard Server.
//
// Vestaboard Server is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Vestaboard Server is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Vestaboard Server.  If not, see <http://www.gnu.org/licenses/>.

// Package board converts between text payloads and the Vestaboard's 6x22
// matrix of symbol codes, and talks to the board's read-write HTTP API.
package board

import "strings"

const (
	Rows = 6
	Cols = 22
)

// Grid is the board's full state: a fixed matrix of symbol codes, 0 meaning a
// blank cell.
type Grid [Rows][Cols]int

// Color block symbol codes. The board renders these as solid colored flaps.
const (
	CodeBlank  = 0
	CodeRed    = 63
	CodeOrange = 64
	CodeYellow = 65
	CodeGreen  = 66
	CodeBlue   = 67
	CodeViolet = 68
	CodeWhite  = 69
	CodeBlack  = 70
	CodeFilled = 71
)

// Color block runes used inside render payload text. Renderers emit these and
// the codec maps them to the codes above.
const (
	BlockRed    = '🟥'
	BlockOrange = '🟧'
	BlockYellow = '🟨'
	BlockGreen  = '🟩'
	BlockBlue   = '🟦'
	BlockViolet = '🟪'
	BlockWhite  = '⬜'
	BlockBlack  = '⬛'
	BlockFilled = '█'
)

// charMap is the board's fixed symbol table. Unlisted runes have no flap and
// encode to blank.
var charMap = map[rune]int{
	' ': 0,
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8, 'I': 9,
	'J': 10, 'K': 11, 'L': 12, 'M': 13, 'N': 14, 'O': 15, 'P': 16, 'Q': 17,
	'R': 18, 'S': 19, 'T': 20, 'U': 21, 'V': 22, 'W': 23, 'X': 24, 'Y': 25,
	'Z': 26,
	'1': 27, '2': 28, '3': 29, '4': 30, '5': 31, '6': 32, '7': 33, '8': 34,
	'9': 35, '0': 36,
	'!': 37, '@': 38, '#': 39, '$': 40, '(': 41, ')': 42, '-': 44, '+': 46,
	'&': 47, '=': 48, ';': 49, ':': 50, '\'': 52, '"': 53, '%': 54, ',': 55,
	'.': 56, '/': 59, '?': 60, '°': 62,
	BlockRed: CodeRed, BlockOrange: CodeOrange, BlockYellow: CodeYellow,
	BlockGreen: CodeGreen, BlockBlue: CodeBlue, BlockViolet: CodeViolet,
	BlockWhite: CodeWhite, BlockBlack: CodeBlack, BlockFilled: CodeFilled,
}

// reverseCharMap maps symbol codes back to runes for decoding.
var reverseCharMap = func() map[int]rune {
	rev := make(map[int]rune, len(charMap))
	for r, code := range charMap {
		rev[code] = r
	}
	return rev
}()

// BlockCodes lists every color block symbol code. Pattern matchers use this
// to recognize a cell as "some color block".
var BlockCodes = []int{
	CodeRed, CodeOrange, CodeYellow, CodeGreen, CodeBlue,
	CodeViolet, CodeWhite, CodeBlack,
}

// Encode turns a newline-delimited payload into a Grid. The first 6 lines are
// taken; each is uppercased and padded or truncated to 22 cells. Runes with
// no flap degrade silently to blank, so Encode is total and never fails.
func Encode(text string) Grid {
	var grid Grid
	lines := strings.Split(text, "\n")
	for row := 0; row < Rows && row < len(lines); row++ {
		col := 0
		for _, r := range strings.ToUpper(lines[row]) {
			if col >= Cols {
				break
			}
			// variation selectors ride along with some emoji blocks
			if r == 0xFE0F {
				continue
			}
			grid[row][col] = charMap[r]
			col++
		}
	}
	return grid
}

// Decode is the inverse lookup, one string per row. Codes with no reverse
// mapping decode to a space so column positions are preserved. The round trip
// is lossy (case and unsupported glyphs are gone) but idempotent: decoding an
// encoded grid and re-encoding it yields the same grid.
func Decode(grid Grid) []string {
	rows := make([]string, Rows)
	for i, row := range grid {
		var sb strings.Builder
		for _, code := range row {
			r, ok := reverseCharMap[code]
			if !ok {
				r = ' '
			}
			sb.WriteRune(r)
		}
		rows[i] = sb.String()
	}
	return rows
}

// IsBlockCode reports whether code is one of the recognized color blocks.
func IsBlockCode(code int) bool {
	for _, c := range BlockCodes {
		if c == code {
			return true
		}
	}
	return false
}
