// Package solana carries the transaction plumbing shared by the whirlpool
// client and the command line tool: instruction phase splitting with
// deduplication, and unsigned transaction assembly.
package solana
