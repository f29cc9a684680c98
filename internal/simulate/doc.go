// Package simulate drives the live feed: per-topic match update timers and the
// global snapshot broadcast timer.
//
// Each scheduled topic runs its own goroutine looping on a clockwork ticker.
// Ticks pass a probabilistic gate before mutating the match store, so updates
// arrive in irregular bursts. Topic timers are created lazily on first
// subscription and run until process shutdown.
package simulate
