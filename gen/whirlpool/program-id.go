package whirlpool

import solanago "github.com/gagliardetto/solana-go"

// ProgramID is the concentrated liquidity (whirlpool) program address.
var ProgramID = solanago.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")

// MemoProgramID is the SPL memo program used by the v2 instruction set.
var MemoProgramID = solanago.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
