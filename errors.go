package conf2book

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDocument      = errors.New("document content cannot be empty")
	ErrMarkdownConversion = errors.New("markdown conversion failed")

	// Converter construction errors.
	ErrInvalidNoteDate = errors.New("invalid note date")
)
