// Package matchmark keeps derived inline formatting in sync with
// pattern matches in a mutable rich-text document.
//
// A Synchronizer subscribes to a document's change feed and, after each
// local edit, re-derives the formatting attributes its matcher set owns
// on every line the edit touched: previously derived runs are cleared
// and the current matches are written back. The document never stores
// derived formatting that disagrees with its text for longer than one
// edit cycle.
//
// Formatting writes issued by the synchronizer itself carry API
// provenance and an all-retain shape, so they are filtered out of the
// feed before they can retrigger a pass.
//
// The render package projects matched spans into indivisible units for
// display surfaces where a match should behave as a single glyph.
package matchmark
