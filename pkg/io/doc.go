// Package io reads and writes graphs and layouts.
//
// # Text Format
//
// Graphs are read from a line-oriented text format. Tokens are separated by
// whitespace and blank lines are ignored:
//
//	a
//	b
//	c
//	a b
//	b c 2.5
//
// A line with one token declares a node. A line with two or three tokens
// declares an edge from the first node to the second, with an optional
// numeric weight that defaults to 1. Nodes must be declared before the edges
// that use them.
//
// # Errors
//
// [ReadText] stops at the first malformed line and returns an
// [errors.Error] carrying the 1-based line number and one of these codes:
//
//   - DUPLICATE_NODE: a node is declared twice
//   - INVALID_WEIGHT: the third token is not a number
//   - UNKNOWN_ENDPOINT: an edge references an undeclared node
//   - INVALID_LINE: a line has more than three tokens
//
// [ReadTextFile] additionally reports FILE_NOT_FOUND when the file cannot be
// opened.
//
// # Layout Export
//
// [WriteLayout] and [ReadLayout] encode a [layout.Result] as indented JSON,
// which is what the CLI writes for the json output format and what the HTTP
// API returns.
//
// [errors.Error]: github.com/matzehuels/graphdraw/pkg/errors.Error
// [layout.Result]: github.com/matzehuels/graphdraw/pkg/layout.Result
package io
