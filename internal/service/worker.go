package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vanshika/trustpath/internal/dataset"
	"github.com/vanshika/trustpath/internal/domain"
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkIngestor writes datasets through a worker pool. Records are written
// phase by phase so that every phase only references records written earlier.
type BulkIngestor struct {
	writer  dataset.Writer
	workers int
	logger  *slog.Logger
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided concurrency.
func NewBulkIngestor(writer dataset.Writer, workers int, logger *slog.Logger) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BulkIngestor{
		writer:  writer,
		workers: workers,
		logger:  logger,
	}
}

// Ingest validates ds and writes it. A failing phase stops ingestion.
func (bi *BulkIngestor) Ingest(ctx context.Context, ds dataset.Dataset) error {
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var memberships []membership
	for _, t := range ds.Teams {
		for _, m := range t.Members {
			memberships = append(memberships, membership{teamID: t.ID, userID: m})
		}
	}

	phases := []struct {
		name  string
		total int
		fn    func(idx int) error
	}{
		{"users", len(ds.Users), func(i int) error { return bi.writer.UpsertUser(ctx, ds.Users[i]) }},
		{"contacts", len(ds.Contacts), func(i int) error { return bi.writer.UpsertContact(ctx, ds.Contacts[i]) }},
		{"teams", len(ds.Teams), func(i int) error {
			return bi.writer.UpsertTeam(ctx, domain.Team{ID: ds.Teams[i].ID, Name: ds.Teams[i].Name})
		}},
		{"memberships", len(memberships), func(i int) error {
			return bi.writer.AddTeamMember(ctx, memberships[i].teamID, memberships[i].userID)
		}},
		{"relationships", len(ds.Relationships), func(i int) error {
			return bi.writer.UpsertRelationship(ctx, ds.Relationships[i])
		}},
		{"shares", len(ds.Shares), func(i int) error { return bi.writer.ShareContact(ctx, ds.Shares[i]) }},
	}

	for _, phase := range phases {
		if err := bi.run(ctx, phase.total, phase.fn); err != nil {
			return fmt.Errorf("ingest %s: %w", phase.name, err)
		}
		bi.logger.Info("ingest phase complete", "phase", phase.name, "records", phase.total)
	}
	return nil
}

type membership struct {
	teamID string
	userID string
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
