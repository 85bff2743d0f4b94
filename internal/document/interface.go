package document

import (
	"context"
	"io"
)

// Loader is the interface for a format-specific document loader.
type Loader interface {
	// Load reads the document found at the given paths. When more than one
	// file is found their nodes and edges are merged in file order.
	Load(ctx context.Context, paths ...string) (*Document, error)
}

// Writer is the interface for a format-specific document serializer.
type Writer interface {
	Write(ctx context.Context, w io.Writer, doc *Document) error
}
