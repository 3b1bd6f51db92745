package input

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/model"
)

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", common.ErrInvalidPurchase, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return common.ErrInvalidPurchase
}

var (
	purchaseSchema = compile(PurchaseSchema)
	batchSchema    = compile(BatchSchema)
	profileSchema  = compile(ProfileSchema)
)

func compile(source string) func() (*gojsonschema.Schema, error) {
	return sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	})
}

// DecodePurchase validates and decodes one purchase document.
func DecodePurchase(data []byte) (model.PurchaseInput, error) {
	var in model.PurchaseInput
	if err := decode(purchaseSchema, data, &in); err != nil {
		return model.PurchaseInput{}, err
	}
	return in, nil
}

// DecodeBatch validates and decodes a JSON array of purchase documents.
func DecodeBatch(data []byte) ([]model.PurchaseInput, error) {
	var in []model.PurchaseInput
	if err := decode(batchSchema, data, &in); err != nil {
		return nil, err
	}
	return in, nil
}

// DecodeProfile validates and decodes a financial profile document.
func DecodeProfile(data []byte) (model.FinancialProfile, error) {
	var p model.FinancialProfile
	if err := decode(profileSchema, data, &p); err != nil {
		return model.FinancialProfile{}, err
	}
	return p, nil
}

func decode(schema func() (*gojsonschema.Schema, error), data []byte, out any) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidPurchase, err)
	}

	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			problems[i] = desc.String()
		}
		return &ValidationError{Problems: problems}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidPurchase, err)
	}
	return nil
}
