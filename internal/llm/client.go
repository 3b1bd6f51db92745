package llm

import (
	"context"
)

// Client is an external categorizer.
type Client interface {
	Categorize(ctx context.Context, req CategorizeRequest) (CategorizeResponse, error)
}

// CategorizeRequest is the purchase sent to the categorizer.
type CategorizeRequest struct {
	ItemName string  `json:"itemName"`
	Cost     float64 `json:"cost"`
}

// CategorizeResponse carries the raw label returned by the categorizer.
// It is validated by the Classifier, not by the client.
type CategorizeResponse struct {
	Category string `json:"category"`
}
