package storage

import (
	"os"
	"strings"
)

// AccessMode describes how the backing file is opened: read-only or
// read-write, in text or binary transfer mode. It is fixed at handle
// construction.
type AccessMode string

const (
	ModeRead            AccessMode = "r"
	ModeReadWrite       AccessMode = "r+"
	ModeReadBinary      AccessMode = "rb"
	ModeReadWriteBinary AccessMode = "rb+"
)

func (m AccessMode) Valid() bool {
	switch m {
	case ModeRead, ModeReadWrite, ModeReadBinary, ModeReadWriteBinary:
		return true
	}
	return false
}

func (m AccessMode) Binary() bool {
	return m == ModeReadBinary || m == ModeReadWriteBinary
}

// writeIntent reports whether the mode string signals write or append
// capability, which requires the file to exist before opening.
func (m AccessMode) writeIntent() bool {
	return strings.ContainsAny(string(m), "+wa")
}

// openFlags maps the mode to os.OpenFile flags. The binary/text
// distinction does not change the flags; byte-identical transfer is the
// only behavior on POSIX.
func (m AccessMode) openFlags() int {
	if m.writeIntent() {
		return os.O_RDWR
	}
	return os.O_RDONLY
}
