// Package agents provides the client side of the trusted server surface.
//
// External agent processes never see encrypted envelopes or the encryption
// key. When an agent needs a provider credential it asks the vault's
// read-for-use endpoint for the decrypted value, authenticating with the
// shared server secret. This package implements that client.
package agents
