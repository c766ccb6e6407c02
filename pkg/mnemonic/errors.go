package mnemonic

import "errors"

var (
	// ErrUnknownWordlist ...
	ErrUnknownWordlist = errors.New("unknown wordlist")
	// ErrNullWordlist ...
	ErrNullWordlist = errors.New("wordlist is null")
	// ErrCorruptedWordlist is returned when a wordlist has the wrong number of
	// words, duplicate words or doesn't match its checksum.
	ErrCorruptedWordlist = errors.New("corrupted wordlist")
	// ErrInvalidSeedLength ...
	ErrInvalidSeedLength = errors.New("seed length must be 16, 24 or 32 bytes")
	// ErrInvalidMnemonicLength ...
	ErrInvalidMnemonicLength = errors.New("invalid number of mnemonic words")
	// ErrInvalidWord ...
	ErrInvalidWord = errors.New("invalid mnemonic word")
	// ErrChecksumMismatch ...
	ErrChecksumMismatch = errors.New("mnemonic checksum mismatch")
)
