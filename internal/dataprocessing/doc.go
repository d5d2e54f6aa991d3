// Package dataprocessing implements the comparison pipeline core: it
// loads daily options snapshots into normalized in-memory tables,
// reduces each day to one representative transaction per contract, and
// computes the dark pool activity score across a consecutive-day pair.
package dataprocessing
