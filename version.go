// Package heron generates API reference sites from extracted documentation nodes.
package heron

// Version is the current heron release.
const Version = "0.3.0"
