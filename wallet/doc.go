// Package wallet implements wallet file handling for the Ember Wallet
// desktop shell: reading wallet metadata, normalizing storage paths, and
// the daemon that owns loaded wallets and the network session.
//
// The shell never touches wallet files directly; everything goes through
// the Daemon so that each wallet is loaded at most once per process.
package wallet
