// Package provisioner synthesizes worker descriptors for grants; it stands
// in for the external node-lifecycle adapter.
package provisioner
