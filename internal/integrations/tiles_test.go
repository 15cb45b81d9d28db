package integrations

import (
	"errors"
	"testing"

	"github.com/PolarWolf314/tether/internal/api"
	terrors "github.com/PolarWolf314/tether/internal/errors"
)

type recorder struct {
	calls    []string
	revoked  string
	selected string
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		Select: func(option api.IntegrationOption) {
			r.calls = append(r.calls, "select")
			r.selected = option.Name
		},
		Launch: func(option api.IntegrationOption) error {
			r.calls = append(r.calls, "launch")
			return nil
		},
		Revoke: func(id string) error {
			r.calls = append(r.calls, "revoke")
			r.revoked = id
			return nil
		},
		Reload: func() error {
			r.calls = append(r.calls, "reload")
			return nil
		},
	}
}

func TestResolveTile(t *testing.T) {
	auths := []api.IntegrationAuth{
		{ID: "auth-gh", Integration: "github"},
		{ID: "auth-heroku", Integration: "heroku"},
	}

	tests := []struct {
		name     string
		option   api.IntegrationOption
		auths    []api.IntegrationAuth
		want     TileState
		wantAuth string
	}{
		{"unavailable without auth", api.IntegrationOption{Name: "Fly.io"}, nil, TileUnavailable, ""},
		{"unavailable wins over auth", api.IntegrationOption{Name: "GitHub"}, auths, TileUnavailable, ""},
		{"authorized case-insensitive", api.IntegrationOption{Name: "GitHub", IsAvailable: true}, auths, TileAuthorized, "auth-gh"},
		{"selectable without match", api.IntegrationOption{Name: "Vercel", IsAvailable: true}, auths, TileSelectable, ""},
		{"selectable with no auths", api.IntegrationOption{Name: "Netlify", IsAvailable: true}, nil, TileSelectable, ""},
		{"upper-case auth does not match", api.IntegrationOption{Name: "Vercel", IsAvailable: true},
			[]api.IntegrationAuth{{ID: "x", Integration: "Vercel"}}, TileSelectable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := ResolveTile(tt.option, tt.auths)
			if tile.State != tt.want {
				t.Fatalf("state = %s, want %s", tile.State, tt.want)
			}
			if tt.wantAuth == "" && tile.Authorization != nil {
				t.Errorf("unexpected authorization %+v", tile.Authorization)
			}
			if tt.wantAuth != "" && (tile.Authorization == nil || tile.Authorization.ID != tt.wantAuth) {
				t.Errorf("authorization = %+v, want %s", tile.Authorization, tt.wantAuth)
			}
		})
	}
}

func TestMatchAuthorizationPicksFirst(t *testing.T) {
	auths := []api.IntegrationAuth{
		{ID: "first", Integration: "heroku"},
		{ID: "second", Integration: "heroku"},
	}

	got := MatchAuthorization(api.IntegrationOption{Name: "Heroku"}, auths)
	if got == nil || got.ID != "first" {
		t.Errorf("MatchAuthorization() = %+v, want first", got)
	}
}

func TestUnavailableTileIsInert(t *testing.T) {
	rec := &recorder{}
	tile := ResolveTile(api.IntegrationOption{Name: "Fly.io"}, []api.IntegrationAuth{{ID: "a", Integration: "fly.io"}})

	if tile.Interactive() {
		t.Error("unavailable tile reports itself interactive")
	}
	if err := tile.Press(rec.handlers()); !errors.Is(err, terrors.ErrIntegrationUnavailable) {
		t.Errorf("Press() error = %v, want ErrIntegrationUnavailable", err)
	}
	if err := tile.Revoke(rec.handlers()); !errors.Is(err, terrors.ErrNotAuthorized) {
		t.Errorf("Revoke() error = %v, want ErrNotAuthorized", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("handlers were called: %v", rec.calls)
	}
}

func TestSelectablePressSelectsThenLaunches(t *testing.T) {
	rec := &recorder{}
	tile := ResolveTile(api.IntegrationOption{Name: "Vercel", IsAvailable: true}, nil)

	if err := tile.Press(rec.handlers()); err != nil {
		t.Fatalf("Press() failed: %v", err)
	}
	if len(rec.calls) != 2 || rec.calls[0] != "select" || rec.calls[1] != "launch" {
		t.Errorf("calls = %v, want [select launch]", rec.calls)
	}
	if rec.selected != "Vercel" {
		t.Errorf("selected = %q, want Vercel", rec.selected)
	}
}

func TestAuthorizedRevokeDeletesThenReloads(t *testing.T) {
	rec := &recorder{}
	auths := []api.IntegrationAuth{
		{ID: "auth-1", Integration: "github"},
		{ID: "auth-2", Integration: "github"},
	}
	tile := ResolveTile(api.IntegrationOption{Name: "GitHub", IsAvailable: true}, auths)

	if err := tile.Revoke(rec.handlers()); err != nil {
		t.Fatalf("Revoke() failed: %v", err)
	}
	if rec.revoked != "auth-1" {
		t.Errorf("revoked = %q, want auth-1", rec.revoked)
	}
	if len(rec.calls) != 2 || rec.calls[0] != "revoke" || rec.calls[1] != "reload" {
		t.Errorf("calls = %v, want [revoke reload]", rec.calls)
	}
}

func TestRevokeFailureSkipsReload(t *testing.T) {
	boom := errors.New("boom")
	var reloaded bool
	tile := ResolveTile(api.IntegrationOption{Name: "GitHub", IsAvailable: true}, []api.IntegrationAuth{{ID: "a", Integration: "github"}})

	err := tile.Revoke(Handlers{
		Revoke: func(string) error { return boom },
		Reload: func() error { reloaded = true; return nil },
	})
	if !errors.Is(err, boom) {
		t.Errorf("Revoke() error = %v, want boom", err)
	}
	if reloaded {
		t.Error("reload ran after a failed revoke")
	}
}

func TestSelectableCannotRevoke(t *testing.T) {
	rec := &recorder{}
	tile := ResolveTile(api.IntegrationOption{Name: "Netlify", IsAvailable: true}, nil)

	if err := tile.Revoke(rec.handlers()); !errors.Is(err, terrors.ErrNotAuthorized) {
		t.Errorf("Revoke() error = %v, want ErrNotAuthorized", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("handlers were called: %v", rec.calls)
	}
}

func TestTitleSplitting(t *testing.T) {
	tests := []struct {
		name         string
		wantTitle    string
		wantSubtitle string
	}{
		{"GitHub", "GitHub", ""},
		{"Google Cloud", "Google Cloud", ""},
		{"AWS Secrets Manager", "AWS", "Secrets Manager"},
		{"Azure Key Vault Extra", "Azure", "Key Vault"},
	}

	for _, tt := range tests {
		tile := Tile{Option: api.IntegrationOption{Name: tt.name}}
		if got := tile.Title(); got != tt.wantTitle {
			t.Errorf("Title(%q) = %q, want %q", tt.name, got, tt.wantTitle)
		}
		if got := tile.Subtitle(); got != tt.wantSubtitle {
			t.Errorf("Subtitle(%q) = %q, want %q", tt.name, got, tt.wantSubtitle)
		}
	}
}

func TestFindTile(t *testing.T) {
	tiles := ResolveTiles([]api.IntegrationOption{
		{Name: "GitHub", IsAvailable: true},
		{Name: "AWS Secrets Manager", Slug: "aws-secret-manager"},
	}, nil)

	if tile, ok := FindTile(tiles, "github"); !ok || tile.Option.Name != "GitHub" {
		t.Errorf("FindTile(github) = %+v, %v", tile, ok)
	}
	if tile, ok := FindTile(tiles, "aws-secret-manager"); !ok || tile.State != TileUnavailable {
		t.Errorf("FindTile(slug) = %+v, %v", tile, ok)
	}
	if _, ok := FindTile(tiles, "gitlab"); ok {
		t.Error("FindTile(gitlab) found a tile")
	}
}
