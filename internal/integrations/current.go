package integrations

import "github.com/PolarWolf314/tether/internal/api"

// IntegrationRow is one configured integration prepared for display.
type IntegrationRow struct {
	ID              string
	Integration     string
	App             string
	EnvironmentSlug string
	EnvironmentName string
	IsActive        bool
}

// CurrentIntegrations pairs integrations with their environment names.
// Integrations pointing at an unknown environment keep the slug as the name.
func CurrentIntegrations(integrations []api.Integration, environments []api.Environment) []IntegrationRow {
	names := make(map[string]string, len(environments))
	for _, env := range environments {
		names[env.Slug] = env.Name
	}

	rows := make([]IntegrationRow, 0, len(integrations))
	for _, integration := range integrations {
		name, ok := names[integration.Environment]
		if !ok {
			name = integration.Environment
		}
		rows = append(rows, IntegrationRow{
			ID:              integration.ID,
			Integration:     integration.Integration,
			App:             integration.App,
			EnvironmentSlug: integration.Environment,
			EnvironmentName: name,
			IsActive:        integration.IsActive,
		})
	}
	return rows
}
