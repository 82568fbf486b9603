package models

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSize     = 9
)

// NewID returns a short random identifier for tasks, projects, messages and
// the other entities created at runtime.
func NewID() string {
	return gonanoid.MustGenerate(idAlphabet, idSize)
}
