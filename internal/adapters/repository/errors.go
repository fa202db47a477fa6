package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrOpenCatalog   = errors.New("open catalog failed")
	ErrDecodeCatalog = errors.New("decode catalog failed")
	ErrEncodeCatalog = errors.New("encode catalog failed")
)
