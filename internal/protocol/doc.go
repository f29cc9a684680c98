// Package protocol defines the WebSocket wire envelopes.
//
// Inbound messages parse into a closed set of commands (subscribe/unsubscribe);
// anything else is either malformed (answered with an error envelope) or
// ignored. Outbound envelopes are built by an Encoder that stamps epoch
// milliseconds from an injected clock and marshals each message exactly once.
package protocol
