package whirlpool

import "errors"

var (
	// ErrMintOrder is returned when token mints are not supplied in
	// canonical byte order.
	ErrMintOrder = errors.New("token mints must be in canonical byte order")

	// ErrZeroAddress is returned when a required signer or funder is the
	// zero address.
	ErrZeroAddress = errors.New("address must not be the zero address")

	ErrPoolNotFound      = errors.New("whirlpool account not found")
	ErrPositionNotFound  = errors.New("position account not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrPoolAlreadyExists = errors.New("whirlpool already initialized")

	// ErrInvalidAccountData is returned when an account exists but its
	// bytes do not decode as the expected account type.
	ErrInvalidAccountData = errors.New("account data does not match expected layout")

	// ErrUnsupportedTokenProgram is returned for mints owned by neither
	// token program.
	ErrUnsupportedTokenProgram = errors.New("mint owner is not a supported token program")
)
