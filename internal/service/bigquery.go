package service

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/aicockpit/aicockpit/internal/security"
)

// BigQueryService is the warehouse executor. Generated SQL is untrusted
// text, so every statement passes the SELECT-only validator before it
// reaches BigQuery; a rejected statement surfaces as an execution error
// and the pipeline degrades it to zero rows.
type BigQueryService struct {
	client    *bigquery.Client
	projectID string
	location  string
	timeout   time.Duration
	validator *security.SQLValidator
}

func NewBigQueryService(ctx context.Context, projectID, credentialsFile, location string, timeout time.Duration) (*BigQueryService, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}

	return &BigQueryService{
		client:    client,
		projectID: projectID,
		location:  location,
		timeout:   timeout,
		validator: security.NewSQLValidator(),
	}, nil
}

// Close releases the BigQuery client
func (s *BigQueryService) Close() error {
	return s.client.Close()
}

// TestConnection verifies BigQuery connectivity
func (s *BigQueryService) TestConnection(ctx context.Context) error {
	q := s.client.Query("SELECT 1")
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("query run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("job wait: %w", err)
	}
	return status.Err()
}

// QueryStats carries job metadata for audit logging.
type QueryStats struct {
	JobID               string
	TotalBytesProcessed int64
	ExecutionMs         int64
}

// Execute validates and runs one SQL statement, returning rows with
// column order taken from the job schema.
func (s *BigQueryService) Execute(ctx context.Context, sql string) (*QueryResult, *QueryStats, error) {
	if msg := s.validator.Validate(sql); msg != "" {
		return nil, nil, fmt.Errorf("sql rejected: %s", msg)
	}

	q := s.client.Query(sql)
	if s.location != "" {
		q.Location = s.location
	}

	qCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	job, err := q.Run(qCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("query run: %w", err)
	}
	status, err := job.Wait(qCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("job wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}

	it, err := job.Read(qCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("job read: %w", err)
	}

	var rows []map[string]any
	var columns []string
	first := true

	for {
		var row map[string]bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}

		if first && it.Schema != nil {
			for _, f := range it.Schema {
				columns = append(columns, f.Name)
			}
			first = false
		}

		m := make(map[string]any, len(row))
		for k, v := range row {
			m[k] = v
		}
		rows = append(rows, m)
	}

	stats := &QueryStats{
		JobID:       job.ID(),
		ExecutionMs: time.Since(start).Milliseconds(),
	}
	if js := job.LastStatus().Statistics; js != nil {
		stats.TotalBytesProcessed = js.TotalBytesProcessed
	}

	return &QueryResult{Columns: columns, Rows: rows}, stats, nil
}
