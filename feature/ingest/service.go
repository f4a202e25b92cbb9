package ingest

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"swim-admin/core/storage"
	"swim-admin/feature/event"
	"swim-admin/feature/ingest/commit"
	"swim-admin/feature/ingest/parser"
	"swim-admin/feature/ingest/pipeline"
	"swim-admin/feature/ingest/preview"
	"swim-admin/feature/ingest/validate"
	"swim-admin/feature/roster"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	archivePrefix = "uploads"
	previewPrefix = "previews"
)

// Service runs the ingestion pipeline end to end: parse, match, validate,
// then preview or commit. One Service instance handles all uploads; the
// database transaction in the committer provides write isolation.
type Service struct {
	db        *gorm.DB
	events    *event.Service
	snapshots *roster.SnapshotProvider
	store     storage.Client
	bucket    string
	cfg       validate.Config
	logger    *zap.Logger
}

// NewService creates the ingestion service. store may be nil, which
// disables upload archiving.
func NewService(db *gorm.DB, events *event.Service, snapshots *roster.SnapshotProvider, store storage.Client, bucket string, cfg validate.Config, logger *zap.Logger) *Service {
	return &Service{
		db:        db,
		events:    events,
		snapshots: snapshots,
		store:     store,
		bucket:    bucket,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run parses one file and pushes it through matching and validation. It
// reads the roster and event catalog but never writes.
func (s *Service) Run(ctx context.Context, dialect parser.Dialect, seag *parser.SEAGMeta, data []byte) (*pipeline.Run, error) {
	p, err := parser.ForDialect(dialect, seag)
	if err != nil {
		return nil, err
	}

	parsed, err := p.Parse(data)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster snapshot: %w", err)
	}
	resolver, err := s.events.Resolver(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load event catalog: %w", err)
	}

	return pipeline.Execute(parsed, snapshot, resolver, s.cfg), nil
}

// Preview renders the annotated review spreadsheet for one file. The
// rendered artifact is archived for audit when storage is configured; the
// database is never touched.
func (s *Service) Preview(ctx context.Context, dialect parser.Dialect, seag *parser.SEAGMeta, fileName string, data []byte) ([]byte, preview.Summary, error) {
	run, err := s.Run(ctx, dialect, seag, data)
	if err != nil {
		return nil, preview.Summary{}, err
	}

	rendered, summary, err := preview.Generate(run)
	if err != nil {
		return nil, preview.Summary{}, err
	}

	s.archive(ctx, previewPrefix, dialect, fileName, rendered)
	return rendered, summary, nil
}

// Upload is one submitted spreadsheet. Uploads are carried as ordered
// (name, payload) pairs; names are labels, not keys, so a batch may repeat
// a filename without files overwriting each other.
type Upload struct {
	Name string
	Data []byte
}

// FileOutcome is the per-file result of a multi-file upload.
type FileOutcome struct {
	File    string                                 `json:"file"`
	Outcome *commit.Outcome                        `json:"outcome,omitempty"`
	Issues  map[validate.Category][]validate.Issue `json:"issues,omitempty"`
	Error   string                                 `json:"error,omitempty"`
}

// Commit ingests one file and persists its admissible rows. The issue
// report is returned even on success so non-fatal findings reach the
// operator.
func (s *Service) Commit(ctx context.Context, dialect parser.Dialect, seag *parser.SEAGMeta, fileName string, data []byte) (*commit.Outcome, *validate.Report, error) {
	run, err := s.Run(ctx, dialect, seag, data)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := commit.Apply(ctx, s.db, run, fileName)
	if err != nil {
		return nil, run.Report, err
	}

	s.archive(ctx, archivePrefix, dialect, fileName, data)
	return outcome, run.Report, nil
}

// CommitAll ingests a batch of files sequentially. A failing file is
// reported and the batch continues with the next one.
func (s *Service) CommitAll(ctx context.Context, dialect parser.Dialect, seag *parser.SEAGMeta, uploads []Upload) []FileOutcome {
	outcomes := make([]FileOutcome, 0, len(uploads))
	for _, upload := range uploads {
		fo := FileOutcome{File: upload.Name}
		outcome, report, err := s.Commit(ctx, dialect, seag, upload.Name, upload.Data)
		if report != nil {
			fo.Issues = report.Issues
		}
		if err != nil {
			fo.Error = err.Error()
		} else {
			fo.Outcome = outcome
		}
		outcomes = append(outcomes, fo)
	}
	return outcomes
}

// UploadResponse is the aggregate answer to a multi-file upload: overall
// counts and the merged issue buckets, plus the per-file breakdown.
type UploadResponse struct {
	Success  bool                                   `json:"success"`
	Message  string                                 `json:"message"`
	Athletes int                                    `json:"athletes"`
	Results  int                                    `json:"results"`
	Events   int                                    `json:"events"`
	Meets    int                                    `json:"meets"`
	Issues   map[validate.Category][]validate.Issue `json:"issues"`
	Files    []FileOutcome                          `json:"files"`
}

// SummarizeUpload folds per-file outcomes into the aggregate response.
func SummarizeUpload(outcomes []FileOutcome) UploadResponse {
	resp := UploadResponse{
		Success: true,
		Issues:  make(map[validate.Category][]validate.Issue),
		Files:   outcomes,
	}

	ingested := 0
	for _, fo := range outcomes {
		for cat, issues := range fo.Issues {
			resp.Issues[cat] = append(resp.Issues[cat], issues...)
		}
		if fo.Error != "" {
			resp.Success = false
			continue
		}
		ingested++
		resp.Athletes += fo.Outcome.Athletes
		resp.Results += fo.Outcome.ResultsCreated + fo.Outcome.ResultsUpdated
		resp.Events += fo.Outcome.Events
		if fo.Outcome.MeetCreated {
			resp.Meets++
		}
	}

	resp.Message = fmt.Sprintf("ingested %d of %d file(s)", ingested, len(outcomes))
	return resp
}

// ArchivedUpload describes one archived source file.
type ArchivedUpload struct {
	Key      string    `json:"key"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// ListArchive lists archived uploads, optionally filtered by dialect.
func (s *Service) ListArchive(ctx context.Context, dialect string) ([]ArchivedUpload, error) {
	if s.store == nil {
		return nil, fmt.Errorf("upload archiving is not configured")
	}

	prefix := archivePrefix + "/"
	if dialect != "" {
		prefix += dialect + "/"
	}

	var uploads []ArchivedUpload
	for obj := range s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		uploads = append(uploads, ArchivedUpload{Key: obj.Key, Size: obj.Size, Modified: obj.LastModified})
	}
	return uploads, nil
}

// archive stores a spreadsheet for audit. Best effort: an archive failure
// is logged and never fails the request that produced the artifact.
func (s *Service) archive(ctx context.Context, prefix string, dialect parser.Dialect, fileName string, data []byte) {
	if s.store == nil {
		return
	}

	key := path.Join(prefix, string(dialect),
		fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102T150405"), path.Base(fileName)))

	_, err := s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		s.logger.Warn("Failed to archive upload", zap.String("key", key), zap.Error(err))
	}
}
