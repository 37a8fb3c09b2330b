// Package node manages cluster worker node records: burst provisioning,
// draining and safe destruction.
package node
