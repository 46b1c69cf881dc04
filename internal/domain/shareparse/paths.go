package shareparse

import "strings"

type pathSlug struct {
	prefix string
	slug   string
}

// Page path prefixes of the puzzle site.
var pathSlugs = []pathSlug{
	{"/games/mini-crossword", "mini-crossword"},
	{"/games/pyramid-scheme", "pyramid-scheme"},
	{"/puzzles/spelling-bee", "spelling-bee"},
	{"/games/spelling-bee", "spelling-bee"},
	{"/games/bracket-city", "bracket-city"},
	{"/games/letter-boxed", "letter-boxed"},
	{"/games/connections", "connections"},
	{"/games/quintumble", "quintumble"},
	{"/games/crossword", "crossword"},
	{"/games/strands", "strands"},
	{"/games/keyword", "keyword"},
	{"/games/wordle", "wordle"},
	{"/games/vertex", "vertex"},
	{"/games/sudoku", "sudoku"},
	{"/games/tiles", "tiles"},
}

// SlugForPath resolves a puzzle page path such as /games/wordle/index.html to
// its game slug.
func SlugForPath(path string) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(path))
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	for _, ps := range pathSlugs {
		if p == ps.prefix || strings.HasPrefix(p, ps.prefix+"/") {
			return ps.slug, true
		}
	}
	return "", false
}
