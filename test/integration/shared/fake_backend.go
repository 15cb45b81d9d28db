package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/secrets"
)

const (
	TestWorkspaceID = "62a0f1c2e4b0"
	TestOrigin      = "https://app.example.com"
	TestToken       = "test-access-token"
)

// FakeBackend is an in-memory HTTP backend serving the endpoints tether calls.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []string

	Workspace    api.Workspace
	Options      []api.IntegrationOption
	Auths        []api.IntegrationAuth
	Integrations []api.Integration
	Bot          *api.Bot
	LatestKey    *api.WorkspaceKey

	// Failures maps "METHOD path-prefix" to a status code to answer with.
	Failures map[string]int

	// LastBotKey is the sealed key from the latest bot status update.
	LastBotKey *api.BotKey
}

// NewFakeBackend starts a backend seeded with one authorized, one available
// and one coming-soon option, and an inactive bot.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		Workspace: api.Workspace{
			ID:           TestWorkspaceID,
			Name:         "demo",
			Environments: []api.Environment{{Name: "Development", Slug: "dev"}, {Name: "Production", Slug: "prod"}},
		},
		Options: []api.IntegrationOption{
			{Name: "Heroku", Slug: "heroku", ClientID: "heroku-client", IsAvailable: true},
			{Name: "GitHub", Slug: "github", ClientID: "github-client", IsAvailable: true},
			{Name: "AWS Parameter Store", Slug: "aws-parameter-store", IsAvailable: false},
		},
		Auths: []api.IntegrationAuth{
			{ID: "auth-heroku", Workspace: TestWorkspaceID, Integration: "heroku"},
		},
		Integrations: []api.Integration{
			{ID: "int1", Workspace: TestWorkspaceID, Environment: "prod", App: "shop-api", Integration: "heroku", IntegrationAuth: "auth-heroku", IsActive: true},
		},
		Bot:      &api.Bot{ID: "bot1", Name: "demo-bot", Workspace: TestWorkspaceID},
		Failures: map[string]int{},
	}

	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the backend base URL.
func (f *FakeBackend) URL() string {
	return f.Server.URL
}

// Requests returns "METHOD path" for every request received.
func (f *FakeBackend) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// Count returns how many requests matched method and path prefix.
func (f *FakeBackend) Count(method, pathPrefix string) int {
	n := 0
	for _, r := range f.Requests() {
		if strings.HasPrefix(r, method+" "+pathPrefix) {
			n++
		}
	}
	return n
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	for key, status := range f.Failures {
		if strings.HasPrefix(r.Method+" "+r.URL.Path, key) {
			writeJSON(w, status, map[string]string{"message": "simulated failure"})
			return
		}
	}

	ws := "/api/v1/workspace/" + f.Workspace.ID
	path := r.URL.Path

	switch {
	case r.Method == http.MethodGet && path == ws:
		writeJSON(w, http.StatusOK, map[string]any{"workspace": f.Workspace})
	case r.Method == http.MethodGet && path == "/api/v1/integration-auth/integration-options":
		writeJSON(w, http.StatusOK, map[string]any{"integrationOptions": f.Options})
	case r.Method == http.MethodGet && path == ws+"/authorizations":
		writeJSON(w, http.StatusOK, map[string]any{"authorizations": f.Auths})
	case r.Method == http.MethodGet && path == ws+"/integrations":
		writeJSON(w, http.StatusOK, map[string]any{"integrations": f.Integrations})
	case r.Method == http.MethodGet && path == "/api/v1/bot/"+f.Workspace.ID:
		writeJSON(w, http.StatusOK, map[string]any{"bot": f.Bot})
	case r.Method == http.MethodGet && path == "/api/v1/key/"+f.Workspace.ID+"/latest":
		writeJSON(w, http.StatusOK, map[string]any{"latestKey": f.LatestKey})
	case r.Method == http.MethodPatch && f.Bot != nil && path == "/api/v1/bot/"+f.Bot.ID+"/active":
		var body struct {
			IsActive bool        `json:"isActive"`
			BotKey   *api.BotKey `json:"botKey"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		updated := *f.Bot
		updated.IsActive = body.IsActive
		f.Bot = &updated
		f.LastBotKey = body.BotKey
		writeJSON(w, http.StatusOK, map[string]any{"bot": f.Bot})
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/api/v1/integration-auth/"):
		id := strings.TrimPrefix(path, "/api/v1/integration-auth/")
		remaining := []api.IntegrationAuth{}
		found := false
		for _, auth := range f.Auths {
			if auth.ID == id {
				found = true
				continue
			}
			remaining = append(remaining, auth)
		}
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "authorization not found"})
			return
		}
		f.Auths = remaining
		writeJSON(w, http.StatusOK, map[string]any{})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "no route for " + r.Method + " " + path})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SealWorkspaceKey stores a workspace key sealed for userPublicKey as the latest key.
func (f *FakeBackend) SealWorkspaceKey(t *testing.T, workspaceKey, userPublicKey string) {
	t.Helper()
	senderPub, senderPriv := GenerateKeyPair(t)
	ciphertext, nonce, err := secrets.EncryptAsymmetric(workspaceKey, userPublicKey, senderPriv)
	if err != nil {
		t.Fatalf("Failed to seal workspace key: %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LatestKey = &api.WorkspaceKey{
		EncryptedKey: ciphertext,
		Nonce:        nonce,
		Sender:       api.KeySender{PublicKey: senderPub},
	}
}

// RenderOption is an available option tether has no launch URL for.
var RenderOption = api.IntegrationOption{Name: "Render", Slug: "render", ClientID: "render-client", IsAvailable: true}
