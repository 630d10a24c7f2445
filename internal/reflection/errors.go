package reflection

import "errors"

var (
	// ErrNotFound is returned when a class, member, function or parameter
	// cannot be found among the indexed sources.
	ErrNotFound = errors.New("not found")
	// ErrNoFile is returned for handles that were not declared in a file.
	ErrNoFile   = errors.New("filename is not set")
	// ErrReadFile is returned when the declaring file cannot be read.
	ErrReadFile = errors.New("unable to open file")
)
