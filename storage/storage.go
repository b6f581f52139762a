// Package storage uploads assets to the host that serves them publicly.
package storage

import "context"

// Mode selects how the host should treat an object.
type Mode int

const (
	// ModeImage marks a cacheable image.
	ModeImage Mode = iota
	// ModeRaw marks a document served as is, such as a PDF resume.
	ModeRaw
)

type Object struct {
	// Key is the slash separated object name, folder included.
	Key         string
	Filename    string
	ContentType string
	Body        []byte
	Mode        Mode
}

// AssetStore persists an object and returns its public URL.
type AssetStore interface {
	Put(ctx context.Context, obj Object) (string, error)
	Name() string
}
