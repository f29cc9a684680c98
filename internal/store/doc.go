// Package store implements the in-memory match store and catalog.
//
// A single Store guards all seeded state behind one RWMutex. Live score/minute
// state flows through exactly one mutation entry point (ApplyScoreUpdate) so
// the update scheduler and the admin API cannot race field-by-field writes.
package store
