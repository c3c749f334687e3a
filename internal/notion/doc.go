// Package notion models the remote workspace platform surface.
//
// It defines the wire types for property values, property definitions,
// pages, databases, blocks and users, the query filter shapes, and a
// rate-limited HTTP client implementing the Adapter interface the rest
// of the module is written against. Everything above this package is
// pure in-memory translation; this is the only package that talks to
// the network.
package notion
