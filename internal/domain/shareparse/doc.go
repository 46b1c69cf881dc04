// Package shareparse turns the result text puzzle games offer for sharing
// (emoji grids, timers, labelled scores, result URLs) into a single numeric
// score.
//
// Extraction is best effort. Each game slug owns an ordered list of
// structural strategies; when none of them produce a plausible value the
// parser tries the game's declared pattern, then its URL parameter, and
// finally the first number in the text with per-game corrections.
package shareparse
