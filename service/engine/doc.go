// Package engine implements the allocation lifecycle engine: admission
// control, grant activation, release and TTL expiry against one capacity
// ledger.
package engine
