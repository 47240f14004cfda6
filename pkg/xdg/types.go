// pkg/xdg/types.go

package xdg

const (
	// Permission modes (in octal)
	DirPermOwnerOnly       = 0700
	FilePermOwnerReadWrite = 0600
)
