package service

import "errors"

// Sentinel kinds for run errors.
var (
	ErrNoSeasons = errors.New("no seasons to process")
	ErrSource    = errors.New("read source data failed")
	ErrExport    = errors.New("write derived data failed")
	ErrStorage   = errors.New("open storage failed")
)
