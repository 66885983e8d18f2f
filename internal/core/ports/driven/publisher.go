package driven

import "context"

// PublishFile is one file of an upload.
type PublishFile struct {
	Name    string
	Content string
}

// Publisher uploads generated components somewhere shareable.
type Publisher interface {
	// Publish uploads files and returns a URL for the result.
	Publish(ctx context.Context, description string, files []PublishFile) (string, error)
}
