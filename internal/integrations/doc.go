// Package integrations turns backend integration state into what tether shows.
//
// A cloud integration option is presented as a tile in exactly one state:
//
//   - Unavailable: the option is not yet offered ("coming soon")
//   - Authorized: an authorization exists whose integration name equals the
//     option name in lower case; the tile offers a revoke action
//   - Selectable: the option is available and has not been authorized
//
// When several authorizations match one option, the first in list order is
// the one a revoke removes.
//
// The package also holds the provider launch URL table, the "current
// integrations" rows and the static framework integration catalog.
package integrations
