package integrations

import (
	"strings"

	"github.com/PolarWolf314/tether/internal/api"
	terrors "github.com/PolarWolf314/tether/internal/errors"
)

// TileState is the interaction state of an integration tile.
type TileState int

const (
	TileSelectable TileState = iota
	TileAuthorized
	TileUnavailable
)

func (s TileState) String() string {
	switch s {
	case TileAuthorized:
		return "authorized"
	case TileUnavailable:
		return "coming soon"
	default:
		return "available"
	}
}

// Tile is one cloud integration option resolved against the workspace's authorizations.
type Tile struct {
	Option api.IntegrationOption
	State  TileState
	// Authorization is the revoke target; set only for authorized tiles.
	Authorization *api.IntegrationAuth
}

// Handlers are the actions a tile delegates to.
type Handlers struct {
	Select func(option api.IntegrationOption)
	Launch func(option api.IntegrationOption) error
	Revoke func(integrationAuthID string) error
	Reload func() error
}

// ResolveTile computes the state of one option.
func ResolveTile(option api.IntegrationOption, auths []api.IntegrationAuth) Tile {
	if !option.IsAvailable {
		return Tile{Option: option, State: TileUnavailable}
	}

	if auth := MatchAuthorization(option, auths); auth != nil {
		return Tile{Option: option, State: TileAuthorized, Authorization: auth}
	}

	return Tile{Option: option, State: TileSelectable}
}

// ResolveTiles resolves every option, keeping catalog order.
func ResolveTiles(options []api.IntegrationOption, auths []api.IntegrationAuth) []Tile {
	tiles := make([]Tile, 0, len(options))
	for _, option := range options {
		tiles = append(tiles, ResolveTile(option, auths))
	}
	return tiles
}

// MatchAuthorization returns the first authorization for the option, or nil.
func MatchAuthorization(option api.IntegrationOption, auths []api.IntegrationAuth) *api.IntegrationAuth {
	name := strings.ToLower(option.Name)
	for i := range auths {
		if auths[i].Integration == name {
			auth := auths[i]
			return &auth
		}
	}
	return nil
}

// FindTile looks a tile up by option name, case-insensitively.
func FindTile(tiles []Tile, name string) (Tile, bool) {
	for _, tile := range tiles {
		if strings.EqualFold(tile.Option.Name, name) || (tile.Option.Slug != "" && strings.EqualFold(tile.Option.Slug, name)) {
			return tile, true
		}
	}
	return Tile{}, false
}

// Interactive reports whether pressing the tile does anything.
func (t Tile) Interactive() bool {
	return t.State != TileUnavailable
}

// Press selects the option and launches it. Unavailable tiles do nothing.
func (t Tile) Press(h Handlers) error {
	if t.State == TileUnavailable {
		return terrors.ErrIntegrationUnavailable
	}
	if h.Select != nil {
		h.Select(t.Option)
	}
	if h.Launch == nil {
		return nil
	}
	return h.Launch(t.Option)
}

// Revoke deletes the tile's authorization and then reloads; there is no local update.
func (t Tile) Revoke(h Handlers) error {
	if t.State != TileAuthorized || t.Authorization == nil {
		return terrors.ErrNotAuthorized
	}
	if err := h.Revoke(t.Authorization.ID); err != nil {
		return err
	}
	if h.Reload == nil {
		return nil
	}
	return h.Reload()
}

// Title returns the tile heading. Names longer than two words keep only the first word.
func (t Tile) Title() string {
	words := strings.Split(t.Option.Name, " ")
	if len(words) > 2 {
		return words[0]
	}
	return t.Option.Name
}

// Subtitle returns the second and third words of names longer than two words.
func (t Tile) Subtitle() string {
	words := strings.Split(t.Option.Name, " ")
	if len(words) > 2 {
		return words[1] + " " + words[2]
	}
	return ""
}
