package core

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// RecordFilter selects period records.
type RecordFilter func(PeriodRecord) bool

// The three baselines the reconciler and the reorder heuristic look up.
var (
	OnlyAnalysis RecordFilter = func(r PeriodRecord) bool { return r.Type == RecordAnalysis }
	OnlySnapshot RecordFilter = func(r PeriodRecord) bool { return r.Type == RecordSnapshot }
	AnyBaseline  RecordFilter = func(r PeriodRecord) bool {
		return r.Type == RecordAnalysis || r.Type == RecordSnapshot
	}
)

// SortRecords orders records newest first.
func SortRecords(records []PeriodRecord) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
}

// LatestRecord returns the newest record matching filter, or nil.
func LatestRecord(records []PeriodRecord, filter RecordFilter) *PeriodRecord {
	sorted := append([]PeriodRecord(nil), records...)
	SortRecords(sorted)
	for i := range sorted {
		if filter == nil || filter(sorted[i]) {
			return &sorted[i]
		}
	}
	return nil
}

// HistoryService is the append-only store of period records.
type HistoryService interface {
	// Latest returns the newest record matching filter, or nil when there is none.
	Latest(ctx context.Context, filter RecordFilter) (*PeriodRecord, error)
	// Append stores a new record. Ids are never reused.
	Append(ctx context.Context, rec PeriodRecord) (*PeriodRecord, error)
	Get(ctx context.Context, id string) (*PeriodRecord, error)
	// List returns records newest first, optionally restricted to one type.
	List(ctx context.Context, typ RecordType) ([]PeriodRecord, error)
	DeleteOne(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
}

type historyService struct {
	repo RecordRepository
	log  logrus.FieldLogger
}

// NewHistoryService constructs a HistoryService over repo.
func NewHistoryService(repo RecordRepository, log logrus.FieldLogger) HistoryService {
	return &historyService{repo: repo, log: log.WithField("module", "history")}
}

func (s *historyService) Latest(ctx context.Context, filter RecordFilter) (*PeriodRecord, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return LatestRecord(records, filter), nil
}

func (s *historyService) Append(ctx context.Context, rec PeriodRecord) (*PeriodRecord, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("%w: record id is required", ErrValidation)
	}
	if rec.Type != RecordAnalysis && rec.Type != RecordSnapshot {
		return nil, fmt.Errorf("%w: unknown record type %q", ErrValidation, rec.Type)
	}
	if rec.Date.IsZero() {
		return nil, fmt.Errorf("%w: record date is required", ErrValidation)
	}
	_, err := s.repo.GetRecord(ctx, rec.ID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: record %s already exists", ErrValidation, rec.ID)
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("check record %s: %w", rec.ID, err)
	}

	saved, err := s.repo.UpsertRecord(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("append record %s: %w", rec.ID, err)
	}
	s.log.WithFields(logrus.Fields{"record": rec.ID, "type": rec.Type, "items": len(rec.Items)}).Info("period record written")
	return saved, nil
}

func (s *historyService) Get(ctx context.Context, id string) (*PeriodRecord, error) {
	rec, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", id, err)
	}
	return rec, nil
}

func (s *historyService) List(ctx context.Context, typ RecordType) ([]PeriodRecord, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out := records[:0:0]
	for _, r := range records {
		if typ == "" || r.Type == typ {
			out = append(out, r)
		}
	}
	SortRecords(out)
	return out, nil
}

func (s *historyService) DeleteOne(ctx context.Context, id string) error {
	if err := s.repo.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	s.log.WithField("record", id).Warn("period record deleted")
	return nil
}

func (s *historyService) DeleteAll(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteAllRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all records: %w", err)
	}
	s.log.WithField("deleted", n).Warn("history cleared")
	return n, nil
}
