package statestore

import (
	"encoding/json"

	"github.com/lexforge/wdict/internal/config"
	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/pkg/container"
)

// StateSnapshot is the only entity persisted across runs: the
// Configuration a run started with, the set of Locations already fetched,
// the remaining frontier keyed by depth, and a running accepted-word
// count. Visited is a set and carries no order; the frontier keeps its
// depth-level grouping and, within each depth, its order across a
// save/load round trip.
type StateSnapshot struct {
	Config            config.Config
	Visited           container.Set[location.Location]
	Frontier          map[int][]location.Location
	AcceptedWordCount int
}

// snapshotDTO is the JSON-serializable shape of StateSnapshot, matching
// the external state file format: config as an embedded object, visited
// as a flat array of normalized location strings, frontier as a
// string-keyed (depth) object of location-string arrays.
type snapshotDTO struct {
	Config            json.RawMessage     `json:"config"`
	Visited           []string            `json:"visited"`
	Frontier          map[string][]string `json:"frontier"`
	AcceptedWordCount int                 `json:"accepted_word_count"`
}
