// Package keystore is the client's credential store: a small persistent
// key/value store for secrets addressed by a logical service name.
//
// The session layer keeps two services, "token" and "user". Every service
// holds one (account, secret) pair; Set overwrites it and Reset removes it.
//
// Two implementations are provided:
//
//   - SQLiteStore seals secrets with AES-GCM under a key derived from a
//     passphrase and a per-database salt, and keeps them in the local SQLite
//     database created by OpenDatabase.
//   - MemoryStore keeps plaintext in memory for ephemeral runs and tests.
//
// Get returns (nil, nil) for a service that holds nothing.
package keystore
