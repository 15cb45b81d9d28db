package integrations

import (
	"fmt"

	"github.com/PolarWolf314/tether/internal/api"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/yosida95/uritemplate/v3"
)

// Provider authorization URL templates. {+origin} keeps the callback origin's
// scheme separator and slashes unescaped.
var providerTemplates = map[string]*uritemplate.Template{
	"Heroku":  uritemplate.MustNew("https://id.heroku.com/oauth/authorize?client_id={clientId}&response_type=code&scope=write-protected&state={state}"),
	"Vercel":  uritemplate.MustNew("https://vercel.com/integrations/{clientSlug}/new?state={state}"),
	"Netlify": uritemplate.MustNew("https://app.netlify.com/authorize?client_id={clientId}&response_type=code&state={state}&redirect_uri={+origin}/netlify"),
	"GitHub":  uritemplate.MustNew("https://github.com/login/oauth/authorize?client_id={clientId}&response_type=code&scope=repo&redirect_uri={+origin}/github&state={state}"),
}

// IsKnownProvider reports whether the option has a launch URL.
func IsKnownProvider(name string) bool {
	_, ok := providerTemplates[name]
	return ok
}

// LaunchURL builds the provider authorization URL for an option.
func LaunchURL(option api.IntegrationOption, state, origin string) (string, error) {
	tmpl, ok := providerTemplates[option.Name]
	if !ok {
		return "", fmt.Errorf("%w: %q", terrors.ErrUnknownProvider, option.Name)
	}

	values := uritemplate.Values{}
	values.Set("clientId", uritemplate.String(option.ClientID))
	values.Set("clientSlug", uritemplate.String(option.ClientSlug))
	values.Set("state", uritemplate.String(state))
	values.Set("origin", uritemplate.String(origin))

	u, err := tmpl.Expand(values)
	if err != nil {
		return "", fmt.Errorf("expanding %s launch URL: %w", option.Name, err)
	}
	return u, nil
}
