package models

import "github.com/google/uuid"

// IDGenerator produces unique ids for quizzes, questions and their
// nested parts. It is injected into every factory and editor so tests
// can supply deterministic ids.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// NewUUIDGenerator returns the production id generator backed by
// random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}
