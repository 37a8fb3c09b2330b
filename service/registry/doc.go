// Package registry implements the auxiliary service registry: shared, named
// endpoints referenced by allocations rather than owned by one.
package registry
