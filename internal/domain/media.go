package domain

import "io"

// Photo is an uploaded image on its way to the media store.
type Photo struct {
	Name        string
	ContentType string
	Size        int64 // -1 when unknown
	Body        io.Reader
}
