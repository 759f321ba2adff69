package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/skyairrace/records-api/internal/logic"
	"github.com/skyairrace/records-api/internal/models"
)

// Decode builds a dataset from data.json and, when present, challenge.json.
// A malformed document fails the whole load; individual malformed rows
// decode to empty values.
func Decode(records, challenge []byte, loc *time.Location) (*logic.Dataset, error) {
	var doc models.RecordsDocument
	if err := json.Unmarshal(records, &doc); err != nil {
		return nil, fmt.Errorf("decode records document: %w", err)
	}

	var cdoc *models.ChallengeDocument
	if challenge != nil {
		cdoc = &models.ChallengeDocument{}
		if err := json.Unmarshal(challenge, cdoc); err != nil {
			return nil, fmt.Errorf("decode challenge document: %w", err)
		}
	}

	return logic.NewDataset(&doc, cdoc, loc), nil
}
