// Package statestore saves and loads the StateSnapshot that lets a crawl
// resume: configuration, visited locations, and the remaining frontier.
// Serialization is encoding/json, mirroring internal/config's own
// DTO-then-validate pattern.
package statestore

import (
	"encoding/json"
	"net/url"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/lexforge/wdict/internal/config"
	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/container"
)

// Save overwrites path with the JSON encoding of snap.
func Save(path string, snap StateSnapshot, sink telemetry.Sink) error {
	configBytes, err := json.Marshal(snap.Config.ToDTO())
	if err != nil {
		malformed := &StateMalformed{Path: path, Reason: err.Error()}
		recordError(sink, "Save", malformed, path)
		return malformed
	}

	visited := make([]string, 0, snap.Visited.Size())
	for _, loc := range snap.Visited.ToSlice() {
		visited = append(visited, loc.String())
	}
	sort.Strings(visited)

	frontier := make(map[string][]string, len(snap.Frontier))
	for depth, locs := range snap.Frontier {
		strs := make([]string, len(locs))
		for i, loc := range locs {
			strs[i] = loc.String()
		}
		frontier[strconv.Itoa(depth)] = strs
	}

	dto := snapshotDTO{
		Config:            configBytes,
		Visited:           visited,
		Frontier:          frontier,
		AcceptedWordCount: snap.AcceptedWordCount,
	}

	encoded, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		malformed := &StateMalformed{Path: path, Reason: err.Error()}
		recordError(sink, "Save", malformed, path)
		return malformed
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		malformed := &StateMalformed{Path: path, Reason: err.Error()}
		recordError(sink, "Save", malformed, path)
		return malformed
	}
	return nil
}

// Load reads and validates the StateSnapshot at path. It fails with
// *StateMissing if path does not exist, *StateMalformed on any parse or
// required-field failure.
func Load(path string, sink telemetry.Sink) (StateSnapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			missing := &StateMissing{Path: path}
			recordError(sink, "Load", missing, path)
			return StateSnapshot{}, missing
		}
		malformed := &StateMalformed{Path: path, Reason: err.Error()}
		recordError(sink, "Load", malformed, path)
		return StateSnapshot{}, malformed
	}

	var dto snapshotDTO
	if err := json.Unmarshal(content, &dto); err != nil {
		malformed := &StateMalformed{Path: path, Reason: err.Error()}
		recordError(sink, "Load", malformed, path)
		return StateSnapshot{}, malformed
	}
	if len(dto.Config) == 0 {
		malformed := &StateMalformed{Path: path, Reason: "missing required field: config"}
		recordError(sink, "Load", malformed, path)
		return StateSnapshot{}, malformed
	}

	cfg, err := config.FromDTOBytes(dto.Config)
	if err != nil {
		malformed := &StateMalformed{Path: path, Reason: "config: " + err.Error()}
		recordError(sink, "Load", malformed, path)
		return StateSnapshot{}, malformed
	}

	visited := container.NewSet[location.Location]()
	for _, s := range dto.Visited {
		loc, err := parseLocationString(s)
		if err != nil {
			malformed := &StateMalformed{Path: path, Reason: "visited: " + err.Error()}
			recordError(sink, "Load", malformed, path)
			return StateSnapshot{}, malformed
		}
		visited.Add(loc)
	}

	frontier := make(map[int][]location.Location, len(dto.Frontier))
	for depthStr, strs := range dto.Frontier {
		depth, err := strconv.Atoi(depthStr)
		if err != nil {
			malformed := &StateMalformed{Path: path, Reason: "frontier: non-integer depth key " + depthStr}
			recordError(sink, "Load", malformed, path)
			return StateSnapshot{}, malformed
		}
		locs := make([]location.Location, 0, len(strs))
		for _, s := range strs {
			loc, err := parseLocationString(s)
			if err != nil {
				malformed := &StateMalformed{Path: path, Reason: "frontier: " + err.Error()}
				recordError(sink, "Load", malformed, path)
				return StateSnapshot{}, malformed
			}
			locs = append(locs, loc)
		}
		frontier[depth] = locs
	}

	return StateSnapshot{
		Config:            cfg,
		Visited:           visited,
		Frontier:          frontier,
		AcceptedWordCount: dto.AcceptedWordCount,
	}, nil
}

// parseLocationString reconstructs a Location from its normalized string
// form: a remote Location round-trips as an absolute http(s) URL, a local
// Location as an absolute filesystem path.
func parseLocationString(s string) (location.Location, error) {
	if u, err := url.Parse(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return location.NewRemote(*u), nil
	}
	return location.NewLocal(s)
}

func recordError(sink telemetry.Sink, action string, err error, path string) {
	if sink == nil {
		return
	}
	sink.RecordError(time.Now(), "statestore", action, mapStateStoreErrorToTelemetryCause(err), err.Error(),
		[]telemetry.Attribute{telemetry.NewAttr(telemetry.AttrPath, path)})
}
