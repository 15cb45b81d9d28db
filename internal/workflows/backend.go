package workflows

import (
	"context"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/skratchdot/open-golang/open"
)

// Backend is the slice of the API that workflows use. *api.Client satisfies it.
type Backend interface {
	GetWorkspace(ctx context.Context, workspaceID string) (*api.Workspace, error)
	GetIntegrationOptions(ctx context.Context) ([]api.IntegrationOption, error)
	GetWorkspaceAuthorizations(ctx context.Context, workspaceID string) ([]api.IntegrationAuth, error)
	GetWorkspaceIntegrations(ctx context.Context, workspaceID string) ([]api.Integration, error)
	GetBot(ctx context.Context, workspaceID string) (*api.Bot, error)
	GetLatestKey(ctx context.Context, workspaceID string) (*api.WorkspaceKey, error)
	SetBotActiveStatus(ctx context.Context, botID string, isActive bool, botKey *api.BotKey) (*api.Bot, error)
	DeleteIntegrationAuth(ctx context.Context, integrationAuthID string) error
}

var _ Backend = (*api.Client)(nil)

// Navigator sends the user to a URL outside tether.
type Navigator interface {
	Navigate(url string) error
}

// NavigatorFunc adapts a function to a Navigator.
type NavigatorFunc func(url string) error

func (f NavigatorFunc) Navigate(url string) error {
	return f(url)
}

// BrowserNavigator opens URLs in the system browser.
type BrowserNavigator struct{}

func (BrowserNavigator) Navigate(url string) error {
	return open.Run(url)
}
