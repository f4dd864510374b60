// Package ports defines the driven interfaces of the engine: session
// persistence, remote USSD delivery and SMS delivery. Adapters live under
// pkg/adapters; portstest carries a reusable store contract suite.
package ports
