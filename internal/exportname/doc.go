// Package exportname parses the structured filenames the exporter gives its
// .zip artifacts and counts rows in the table embedded in a sessions archive.
//
// A name has the shape {game_id}_{start}_to_{end}_{suffix}_{kind}.zip. Games in
// the CYCLE family carry a second identifier token, so their game id is the
// first two tokens. Dates are taken by position from the end of the stem and
// are not validated.
package exportname
