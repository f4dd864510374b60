// Package domain holds the core types of the USSD engine: the menu graph,
// the per-subscriber session state, the carrier request/reply envelopes,
// operator codes and special actions, hook descriptors and the app
// configuration. It has no dependencies on the runtime or any adapter.
package domain
