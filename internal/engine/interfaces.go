package engine

import (
	"context"

	"github.com/hollis/taxease/internal/model"
)

// Classifier defines the contract for the external document-understanding
// call. It must fail, not return a vacuous success, when the input is not a
// recognizable receipt or invoice.
type Classifier interface {
	Classify(ctx context.Context, file model.File) (*model.Extraction, error)
}
