// Package audit records the integration operations tether performs.
//
// Each bot activation, integration launch and authorization revoke appends
// one entry to a per-user log so a user can see what was done from this
// machine and when.
//
// # Log Format
//
// The log is stored as JSON Lines (one JSON object per line) at:
//
//	<user data dir>/tether/activity.jsonl
//
// Each entry contains:
//   - ts: RFC3339 timestamp with microseconds (UTC)
//   - op: operation name (bot-activate, bot-deactivate, integration-launch, integration-revoke)
//   - workspace: workspace id
//   - session: id of the login that performed the operation
//
// plus the operation's subject (integration name, bot id, authorization id).
// Anti-forgery tokens and keys are never written to the log.
//
// # Failure Handling
//
// Logging never fails an operation. Write errors are dropped.
package audit
