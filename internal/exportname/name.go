package exportname

import (
	"errors"
	"fmt"
	"strings"

	"reindexer/internal/catalog"
)

const cyclePrefix = "CYCLE"

var (
	// ErrMalformedName is returned when a filename has too few tokens.
	ErrMalformedName = errors.New("exportname: malformed archive name")
	// ErrUnknownKind is returned when the kind token is not in the table.
	ErrUnknownKind = errors.New("exportname: unknown artifact kind")
)

// kindTable maps kind tokens to artifact kinds. The exporter is not consistent
// about singular and plural spellings, so both are listed.
var kindTable = map[string]catalog.Kind{
	"population-features": catalog.KindPopulation,
	"player-features":     catalog.KindPlayers,
	"players-features":    catalog.KindPlayers,
	"session-features":    catalog.KindSessions,
	"sessions-features":   catalog.KindSessions,
	"events":              catalog.KindEvents,
	"raw":                 catalog.KindRaw,
}

// treeTokens lists the kind tokens whose newly created entries point their
// template at the game's template tree. The singular players and sessions
// spellings get no template.
var treeTokens = map[string]struct{}{
	"population-features": {},
	"players-features":    {},
	"sessions-features":   {},
	"events":              {},
}

// Name is a parsed archive filename.
type Name struct {
	GameID    string
	StartDate string
	EndDate   string
	DatasetID string
	Suffix    string
	KindToken string
	// Stem is the filename up to its first '.'.
	Stem string
}

// Parse splits a base filename into its tokens.
func Parse(filename string) (Name, error) {
	stem, _, _ := strings.Cut(filename, ".")
	tokens := strings.Split(stem, "_")

	minTokens := 6
	gameID := tokens[0]
	if tokens[0] == cyclePrefix {
		minTokens = 7
	}
	if len(tokens) < minTokens {
		return Name{}, fmt.Errorf("%w: %q has %d tokens, need %d", ErrMalformedName, filename, len(tokens), minTokens)
	}
	if tokens[0] == cyclePrefix {
		gameID = tokens[0] + "_" + tokens[1]
	}

	n := len(tokens)
	name := Name{
		GameID:    gameID,
		StartDate: tokens[n-5],
		EndDate:   tokens[n-3],
		Suffix:    tokens[n-2],
		KindToken: tokens[n-1],
		Stem:      stem,
	}
	name.DatasetID = DatasetID(name.GameID, name.StartDate, name.EndDate)
	return name, nil
}

// DatasetID builds the identifier shared by every artifact of one export.
func DatasetID(gameID, start, end string) string {
	return gameID + "_" + start + "_to_" + end
}

// Kind resolves the name's kind token.
func (n Name) Kind() (catalog.Kind, error) {
	return KindFor(n.KindToken)
}

// KindFor looks up a kind token exactly as written.
func KindFor(token string) (catalog.Kind, error) {
	kind, ok := kindTable[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, token)
	}
	return kind, nil
}

// TreeTemplate returns the template reference for an entry created from this
// archive, or false when its kind token carries none.
func (n Name) TreeTemplate() (string, bool) {
	if _, ok := treeTokens[n.KindToken]; !ok {
		return "", false
	}
	return "/tree/" + n.GameID, true
}
