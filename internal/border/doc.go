// Package border decides whether the text detected in an image runs up
// against all four image borders.
//
// An image whose text touches every edge is most likely a tight crop of a
// word or a line of text and nothing else. An image with text that stays
// clear of at least one edge most likely contains other content as well.
//
// # Procedure
//
//  1. Detect words on the original image. If any are found, compare them
//     against margins derived from the original's dimensions.
//  2. If nothing is found, the text may sit flush against an edge, which
//     suppresses detection. A copy with a solid border is written to the
//     padded directory and detection runs again on it. If that finds nothing
//     either, the image has no text. Otherwise the margins are derived from
//     the padded dimensions and then widened by the padding width, so they
//     still describe the original content area.
//  3. Every token that is not blank is tested against the four margins. The
//     single characters "-" and "~" are ignored for the top and bottom edges
//     because the detector reports horizontal rules that way.
//  4. Text that hits all four edges is classified as pure text.
//
// # Coordinates
//
// Tokens are in raster coordinates: origin at the top-left, Y grows downward.
package border
