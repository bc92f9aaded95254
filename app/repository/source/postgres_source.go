package source

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	models "school-dashboard/app/models/dashboard"
)

// PostgresSource reads an endpoint's records from the table named after
// it. Every column becomes a record field.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Fetch(ctx context.Context, endpoint string) ([]models.Record, error) {
	query := `SELECT * FROM ` + pq.QuoteIdentifier(TableName(endpoint))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(ErrFetchFailed, "query %s: %v", endpoint, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrapf(ErrFetchFailed, "columns %s: %v", endpoint, err)
	}

	records := make([]models.Record, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrapf(ErrFetchFailed, "scan %s: %v", endpoint, err)
		}

		rec := make(models.Record, len(columns))
		for i, col := range columns {
			// numeric and text columns arrive as []byte
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(ErrFetchFailed, "rows %s: %v", endpoint, err)
	}

	return records, nil
}
