// Package ledger implements the capacity ledger: the authoritative counters
// for total versus committed CPU, memory and worker slots.
package ledger
