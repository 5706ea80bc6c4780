package legacy

import (
	"context"

	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
)

type ImportRequest struct {
	From   string
	To     string
	DryRun bool
}

func (r ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs.Add("from", "from must be in YYYY-MM-DD format")
	}
	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs.Add("to", "to must be in YYYY-MM-DD format")
	}
	if fromOK && toOK && to.Before(from) {
		errs.Add("to", "to must not be before from")
	}

	return errs.Err()
}

// ImportResult counts what happened to the legacy rows.
// Recomputed rows are those whose stored figures disagreed with the resolver.
type ImportResult struct {
	Read       int  `json:"read"`
	Imported   int  `json:"imported"`
	Created    int  `json:"created"`
	Updated    int  `json:"updated"`
	Recomputed int  `json:"recomputed"`
	Skipped    int  `json:"skipped"`
	Breaks     int  `json:"breaks"`
	DryRun     bool `json:"dry_run"`
}

type ImportService interface {
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)
}
