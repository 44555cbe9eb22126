package deployer

import "errors"

// Error kinds. Every error returned by Deploy wraps exactly one of them
// together with its cause.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrNetwork       = errors.New("network error")
	ErrTimeout       = errors.New("confirmation timeout")
	ErrIO            = errors.New("io error")
)

var (
	ErrNoSigners       = errors.New("no signing account available")
	ErrReverted        = errors.New("deployment transaction reverted")
	ErrAddressMismatch = errors.New("receipt contract address does not match the deployment address")
)
