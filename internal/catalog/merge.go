package catalog

import (
	"encoding/json"
	"fmt"

	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/types"
)

// mergeProduct overlays updates onto the stored product at the top level of
// its JSON document. Keys absent from updates keep their stored values.
func mergeProduct(current types.Product, updates map[string]any) (types.Product, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return types.Product{}, fmt.Errorf("encode product: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.Product{}, fmt.Errorf("decode product: %w", err)
	}

	for key, value := range updates {
		doc[key] = value
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return types.Product{}, fmt.Errorf("encode merged product: %w", err)
	}

	var out types.Product
	if err := json.Unmarshal(merged, &out); err != nil {
		return types.Product{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "update fields do not match the product shape")
	}
	return out, nil
}
