package workflows

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/configs"
	"github.com/PolarWolf314/tether/internal/secrets"
	"github.com/PolarWolf314/tether/internal/session"
)

// fakeBackend serves canned data and counts calls per endpoint.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	workspace *api.Workspace
	options   []api.IntegrationOption
	auths     []api.IntegrationAuth
	list      []api.Integration
	bot       *api.Bot
	key       *api.WorkspaceKey

	// errs makes the named endpoint fail.
	errs map[string]error

	lastActive *bool
	lastBotKey *api.BotKey
	deleted    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls: make(map[string]int),
		errs:  make(map[string]error),
		workspace: &api.Workspace{
			ID:           "ws1",
			Name:         "demo",
			Environments: []api.Environment{{Name: "Development", Slug: "dev"}},
		},
	}
}

func (f *fakeBackend) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) GetWorkspace(ctx context.Context, workspaceID string) (*api.Workspace, error) {
	if err := f.record("GetWorkspace"); err != nil {
		return nil, err
	}
	return f.workspace, nil
}

func (f *fakeBackend) GetIntegrationOptions(ctx context.Context) ([]api.IntegrationOption, error) {
	if err := f.record("GetIntegrationOptions"); err != nil {
		return nil, err
	}
	return f.options, nil
}

func (f *fakeBackend) GetWorkspaceAuthorizations(ctx context.Context, workspaceID string) ([]api.IntegrationAuth, error) {
	if err := f.record("GetWorkspaceAuthorizations"); err != nil {
		return nil, err
	}
	return f.auths, nil
}

func (f *fakeBackend) GetWorkspaceIntegrations(ctx context.Context, workspaceID string) ([]api.Integration, error) {
	if err := f.record("GetWorkspaceIntegrations"); err != nil {
		return nil, err
	}
	return f.list, nil
}

func (f *fakeBackend) GetBot(ctx context.Context, workspaceID string) (*api.Bot, error) {
	if err := f.record("GetBot"); err != nil {
		return nil, err
	}
	return f.bot, nil
}

func (f *fakeBackend) GetLatestKey(ctx context.Context, workspaceID string) (*api.WorkspaceKey, error) {
	if err := f.record("GetLatestKey"); err != nil {
		return nil, err
	}
	return f.key, nil
}

func (f *fakeBackend) SetBotActiveStatus(ctx context.Context, botID string, isActive bool, botKey *api.BotKey) (*api.Bot, error) {
	if err := f.record("SetBotActiveStatus"); err != nil {
		return nil, err
	}
	f.lastActive = &isActive
	f.lastBotKey = botKey
	updated := *f.bot
	updated.IsActive = isActive
	f.bot = &updated
	return &updated, nil
}

func (f *fakeBackend) DeleteIntegrationAuth(ctx context.Context, integrationAuthID string) error {
	if err := f.record("DeleteIntegrationAuth"); err != nil {
		return err
	}
	f.deleted = append(f.deleted, integrationAuthID)
	remaining := f.auths[:0:0]
	for _, auth := range f.auths {
		if auth.ID != integrationAuthID {
			remaining = append(remaining, auth)
		}
	}
	f.auths = remaining
	return nil
}

// recordingNavigator remembers every URL it was sent to.
type recordingNavigator struct {
	urls []string
	err  error
}

func (n *recordingNavigator) Navigate(url string) error {
	n.urls = append(n.urls, url)
	return n.err
}

// handshakeFixture is a user, a bot and a workspace key sealed for the user.
type handshakeFixture struct {
	userPriv     string
	botPub       string
	botPriv      string
	workspaceKey string
}

func newHandshakeFixture(t *testing.T, backend *fakeBackend) *handshakeFixture {
	t.Helper()

	userPub, userPriv, err := secrets.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}
	senderPub, senderPriv, err := secrets.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}
	botPub, botPriv, err := secrets.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}

	workspaceKey := "0123456789abcdef0123456789abcdef"
	ciphertext, nonce, err := secrets.EncryptAsymmetric(workspaceKey, userPub, senderPriv)
	if err != nil {
		t.Fatalf("EncryptAsymmetric() failed: %v", err)
	}

	backend.key = &api.WorkspaceKey{
		EncryptedKey: ciphertext,
		Nonce:        nonce,
		Sender:       api.KeySender{PublicKey: senderPub},
	}
	backend.bot = &api.Bot{ID: "bot1", Name: "tether-bot", Workspace: "ws1", PublicKey: botPub}

	return &handshakeFixture{
		userPriv:     userPriv,
		botPub:       botPub,
		botPriv:      botPriv,
		workspaceKey: workspaceKey,
	}
}

// withTempSettings points the activity log at a temp directory.
func withTempSettings(t *testing.T) {
	t.Helper()
	original := configs.UserTetherSettings
	dir := t.TempDir()
	configs.UserTetherSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(dir, "config"),
		UserDataPath:    filepath.Join(dir, "data"),
	}
	t.Cleanup(func() {
		configs.UserTetherSettings = original
	})
}

func newSession(t *testing.T, privateKey string) *session.Session {
	t.Helper()
	s := session.New(session.NewMemoryStore())
	if privateKey == "" {
		return s
	}
	if _, err := s.Begin(privateKey, ""); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	return s
}
