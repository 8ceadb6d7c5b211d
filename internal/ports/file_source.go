package ports

import "github.com/mikey/email-classifier/internal/core"

// FileSource loads a user-chosen file
type FileSource interface {
	Load(path string) (*core.InputFile, error)
}
