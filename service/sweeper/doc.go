// Package sweeper runs the periodic scan that finds and reclaims expired
// allocations.
package sweeper
