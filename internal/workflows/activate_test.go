package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/audit"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/PolarWolf314/tether/internal/secrets"
)

func TestActivateBotSealsKeyForBot(t *testing.T) {
	withTempSettings(t)
	backend := newFakeBackend()
	fx := newHandshakeFixture(t, backend)
	sess := newSession(t, fx.userPriv)

	bot, err := ActivateBot(context.Background(), ActivateBotOptions{
		WorkspaceID: "ws1",
		Bot:         backend.bot,
		Session:     sess,
		Backend:     backend,
	})
	if err != nil {
		t.Fatalf("ActivateBot() failed: %v", err)
	}

	if bot.Status() != api.BotActive {
		t.Errorf("expected bot to be active, got %s", bot.Status())
	}
	if backend.lastActive == nil || !*backend.lastActive {
		t.Fatalf("expected isActive=true to be submitted")
	}

	userPub, err := secrets.PublicKeyFor(fx.userPriv)
	if err != nil {
		t.Fatalf("PublicKeyFor() failed: %v", err)
	}
	got, err := secrets.DecryptAsymmetric(backend.lastBotKey.EncryptedKey, backend.lastBotKey.Nonce, userPub, fx.botPriv)
	if err != nil {
		t.Fatalf("bot could not open its key: %v", err)
	}
	if got != fx.workspaceKey {
		t.Errorf("bot key = %q, want %q", got, fx.workspaceKey)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != audit.OpBotActivate || entries[0].BotID != "bot1" {
		t.Errorf("unexpected activity entries: %+v", entries)
	}
}

func TestActivateBotTogglesCurrentState(t *testing.T) {
	withTempSettings(t)
	backend := newFakeBackend()
	fx := newHandshakeFixture(t, backend)
	sess := newSession(t, fx.userPriv)

	bot := backend.bot
	want := []bool{true, false, true}
	for i, expected := range want {
		updated, err := ActivateBot(context.Background(), ActivateBotOptions{
			WorkspaceID: "ws1",
			Bot:         bot,
			Session:     sess,
			Backend:     backend,
		})
		if err != nil {
			t.Fatalf("ActivateBot() #%d failed: %v", i, err)
		}
		if *backend.lastActive != expected {
			t.Errorf("call #%d submitted isActive=%t, want %t", i, *backend.lastActive, expected)
		}
		bot = updated
	}

	if n := backend.count("SetBotActiveStatus"); n != len(want) {
		t.Errorf("expected %d status updates, got %d", len(want), n)
	}
}

func TestActivateBotDoesNotModifyInputBot(t *testing.T) {
	withTempSettings(t)
	backend := newFakeBackend()
	fx := newHandshakeFixture(t, backend)
	original := backend.bot

	if _, err := ActivateBot(context.Background(), ActivateBotOptions{
		WorkspaceID: "ws1",
		Bot:         original,
		Session:     newSession(t, fx.userPriv),
		Backend:     backend,
	}); err != nil {
		t.Fatalf("ActivateBot() failed: %v", err)
	}

	if original.IsActive {
		t.Error("input bot was modified")
	}
}

func TestActivateBotWithoutPrivateKey(t *testing.T) {
	withTempSettings(t)
	backend := newFakeBackend()
	newHandshakeFixture(t, backend)

	_, err := ActivateBot(context.Background(), ActivateBotOptions{
		WorkspaceID: "ws1",
		Bot:         backend.bot,
		Session:     newSession(t, ""),
		Backend:     backend,
	})
	if !errors.Is(err, terrors.ErrPrivateKeyNotFound) {
		t.Fatalf("expected ErrPrivateKeyNotFound, got %v", err)
	}
	if n := backend.total(); n != 0 {
		t.Errorf("expected no backend calls, got %d", n)
	}
}

func TestActivateBotWithoutBot(t *testing.T) {
	withTempSettings(t)
	backend := newFakeBackend()
	fx := newHandshakeFixture(t, backend)

	_, err := ActivateBot(context.Background(), ActivateBotOptions{
		WorkspaceID: "ws1",
		Bot:         nil,
		Session:     newSession(t, fx.userPriv),
		Backend:     backend,
	})
	if !errors.Is(err, terrors.ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound, got %v", err)
	}
	if n := backend.total(); n != 0 {
		t.Errorf("expected no backend calls, got %d", n)
	}
}

func TestActivateBotWrongPrivateKey(t *testing.T) {
	withTempSettings(t)
	backend := newFakeBackend()
	newHandshakeFixture(t, backend)

	_, otherPriv, err := secrets.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}

	_, err = ActivateBot(context.Background(), ActivateBotOptions{
		WorkspaceID: "ws1",
		Bot:         backend.bot,
		Session:     newSession(t, otherPriv),
		Backend:     backend,
	})
	if !errors.Is(err, terrors.ErrKeyDecryptFailed) {
		t.Fatalf("expected ErrKeyDecryptFailed, got %v", err)
	}
	if n := backend.count("SetBotActiveStatus"); n != 0 {
		t.Errorf("bot status must not be updated after a decrypt failure, got %d calls", n)
	}
}

func TestActivateBotBackendRejection(t *testing.T) {
	withTempSettings(t)
	backend := newFakeBackend()
	fx := newHandshakeFixture(t, backend)
	backend.errs["SetBotActiveStatus"] = &api.Error{StatusCode: 403, Message: "forbidden"}

	_, err := ActivateBot(context.Background(), ActivateBotOptions{
		WorkspaceID: "ws1",
		Bot:         backend.bot,
		Session:     newSession(t, fx.userPriv),
		Backend:     backend,
	})
	if !errors.Is(err, terrors.ErrBackendRejected) {
		t.Fatalf("expected ErrBackendRejected, got %v", err)
	}

	entries, _ := audit.ReadEntries()
	if len(entries) != 0 {
		t.Errorf("expected no activity entries after a rejection, got %d", len(entries))
	}
}

func TestActivateBotKeyFetchFailure(t *testing.T) {
	withTempSettings(t)
	backend := newFakeBackend()
	fx := newHandshakeFixture(t, backend)
	backend.errs["GetLatestKey"] = terrors.ErrBackendUnavailable

	_, err := ActivateBot(context.Background(), ActivateBotOptions{
		WorkspaceID: "ws1",
		Bot:         backend.bot,
		Session:     newSession(t, fx.userPriv),
		Backend:     backend,
	})
	if !errors.Is(err, terrors.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if n := backend.count("SetBotActiveStatus"); n != 0 {
		t.Errorf("expected no status update, got %d", n)
	}
}
