// Package hub implements the connection registry and fan-out engine using the actor pattern.
//
// A single goroutine owns the connection map and every connection's subscription
// set; all access funnels through a typed command channel (no mutexes).
// Per-connection write goroutines isolate slow or dead clients from the rest of
// the fan-out.
package hub
