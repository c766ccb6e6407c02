package domain

import "errors"

var (
	// ErrEmptyAddressList ...
	ErrEmptyAddressList = errors.New("address list is empty")
	// ErrInvalidAddressList ...
	ErrInvalidAddressList = errors.New("address list does not cover its range")
	// ErrAddressListNotFound ...
	ErrAddressListNotFound = errors.New("address list not found")
	// ErrAddressListAlreadyExists ...
	ErrAddressListAlreadyExists = errors.New("address list already exists")
	// ErrAddressMismatch is returned when regenerating a stored range gives
	// different addresses.
	ErrAddressMismatch = errors.New("regenerated addresses do not match stored ones")
)
