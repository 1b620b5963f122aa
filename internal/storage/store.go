// Package storage persists uploaded avatar images and hands back the public
// URL clients embed in user profiles.
package storage

import "context"

// Store saves avatar files under a generated name and returns the URL the
// file is served from.
type Store interface {
	Save(ctx context.Context, data []byte, ext, contentType string) (string, error)
}
