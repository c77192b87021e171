package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTemporary = errors.New("temporary failure")

	// ErrNoKnowledgeBase marks the deliberate retrieval skip taken when no
	// knowledge base id is configured.
	ErrNoKnowledgeBase = errors.New("knowledge base not configured")

	// ErrEmptyCompletion marks a model call that succeeded but returned no
	// usable content.
	ErrEmptyCompletion = errors.New("empty model completion")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
