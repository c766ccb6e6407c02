package addrgen

import "errors"

var (
	// ErrInvalidSeed ...
	ErrInvalidSeed = errors.New("seed must not be empty")
	// ErrInvalidRange ...
	ErrInvalidRange = errors.New("invalid index range")
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrInvalidSecretKey is returned for the (astronomically unlikely) index
	// whose derived secret is zero or not lower than the curve order.
	ErrInvalidSecretKey = errors.New("derived secret is not a valid secp256k1 private key")
	// ErrGeneratorDone is returned by Next once the whole range has been
	// produced.
	ErrGeneratorDone = errors.New("generator exhausted")

	// ErrAcceleratorUnavailable ...
	ErrAcceleratorUnavailable = errors.New("address accelerator unavailable")
	// ErrAcceleratorTimeout ...
	ErrAcceleratorTimeout = errors.New("address accelerator timed out")
	// ErrAcceleratorFailed ...
	ErrAcceleratorFailed = errors.New("address accelerator failed")
	// ErrMalformedAcceleratorOutput ...
	ErrMalformedAcceleratorOutput = errors.New("malformed address accelerator output")
	// ErrAcceleratorMismatch is returned when the accelerator and the curve
	// converter disagree on the address of the same key.
	ErrAcceleratorMismatch = errors.New("address accelerator result mismatch")
	// ErrInvalidAcceleratorTimeout ...
	ErrInvalidAcceleratorTimeout = errors.New("accelerator timeout must not be negative")
)
