package api

// BotStatus is the explicit activation state of a workspace bot.
type BotStatus int

const (
	BotInactive BotStatus = iota
	BotActive
)

func (s BotStatus) String() string {
	if s == BotActive {
		return "active"
	}
	return "inactive"
}

type Environment struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Workspace struct {
	ID           string        `json:"_id"`
	Name         string        `json:"name"`
	Environments []Environment `json:"environments"`
}

// IntegrationOption is a catalog entry for a supported third-party service.
type IntegrationOption struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Type        string `json:"type"`
	ClientID    string `json:"clientId"`
	ClientSlug  string `json:"clientSlug"`
	DocsLink    string `json:"docsLink"`
	IsAvailable bool   `json:"isAvailable"`
}

// IntegrationAuth is a completed OAuth authorization linking a workspace to a provider.
type IntegrationAuth struct {
	ID          string `json:"_id"`
	Workspace   string `json:"workspace"`
	Integration string `json:"integration"`
}

// Integration is a configured sync target for one workspace environment.
type Integration struct {
	ID              string `json:"_id"`
	Workspace       string `json:"workspace"`
	Environment     string `json:"environment"`
	App             string `json:"app,omitempty"`
	Integration     string `json:"integration"`
	IntegrationAuth string `json:"integrationAuth"`
	IsActive        bool   `json:"isActive"`
	Context         string `json:"context,omitempty"`
}

// Bot is the per-workspace service identity that holds a re-encrypted workspace key.
type Bot struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Workspace string `json:"workspace"`
	PublicKey string `json:"publicKey"`
	IsActive  bool   `json:"isActive"`
}

// Status reports the bot's activation state; a nil bot is inactive.
func (b *Bot) Status() BotStatus {
	if b != nil && b.IsActive {
		return BotActive
	}
	return BotInactive
}

type KeySender struct {
	PublicKey string `json:"publicKey"`
}

// WorkspaceKey is the workspace's symmetric key sealed for the requesting user.
type WorkspaceKey struct {
	EncryptedKey string    `json:"encryptedKey"`
	Nonce        string    `json:"nonce"`
	Sender       KeySender `json:"sender"`
}

// BotKey is the workspace key sealed for a bot.
type BotKey struct {
	EncryptedKey string `json:"encryptedKey"`
	Nonce        string `json:"nonce"`
}

type workspaceResponse struct {
	Workspace Workspace `json:"workspace"`
}

type integrationOptionsResponse struct {
	IntegrationOptions []IntegrationOption `json:"integrationOptions"`
}

type authorizationsResponse struct {
	Authorizations []IntegrationAuth `json:"authorizations"`
}

type integrationsResponse struct {
	Integrations []Integration `json:"integrations"`
}

type botResponse struct {
	Bot *Bot `json:"bot"`
}

type latestKeyResponse struct {
	LatestKey *WorkspaceKey `json:"latestKey"`
}

type setBotActiveRequest struct {
	IsActive bool    `json:"isActive"`
	BotKey   *BotKey `json:"botKey,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
