package source

import (
	"context"
	"encoding/json"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"

	models "school-dashboard/app/models/dashboard"
)

// FailureMessage is the only thing a user sees when a load fails. The
// wrapped cause goes to the log.
const FailureMessage = "Network response was not ok"

// ErrFetchFailed covers every load failure: transport errors, non-2xx
// statuses, and bodies that are not a JSON array.
var ErrFetchFailed = errors.New("fetch failed")

// RecordSource loads the full record array behind one endpoint.
type RecordSource interface {
	Fetch(ctx context.Context, endpoint string) ([]models.Record, error)
}

// DecodeRecords parses a JSON array of flat objects. Numbers keep their
// textual form so "01" and 1 stay distinct facet values.
func DecodeRecords(r io.Reader) ([]models.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []models.Record
	if err := dec.Decode(&records); err != nil {
		return nil, errors.Wrapf(ErrFetchFailed, "decode body: %v", err)
	}
	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// TableName maps an endpoint onto the table or collection that stores its
// records: "/results/exam-score-board" becomes "exam_score_board".
func TableName(endpoint string) string {
	base := path.Base(strings.TrimRight(endpoint, "/"))
	return strings.ReplaceAll(base, "-", "_")
}
