package processor

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/torp-app/devis-ingest/internal/knowledge/chunker"
	"github.com/torp-app/devis-ingest/internal/knowledge/loader"
	"github.com/torp-app/devis-ingest/internal/knowledge/sanitizer"
	"github.com/torp-app/devis-ingest/internal/knowledge/types"
	apperrors "github.com/torp-app/devis-ingest/internal/pkg/errors"
	"github.com/torp-app/devis-ingest/internal/pkg/logger"
	"github.com/torp-app/devis-ingest/internal/pkg/workerpool"
	"go.uber.org/zap"
)

// Config limits what the pipeline accepts.
type Config struct {
	MaxFileSize int64 // bytes, unlimited when <= 0
}

// Pipeline turns raw documents into validated chunk sets:
// load, sanitize and truncate, chunk, validate, summarise.
type Pipeline struct {
	sanitizer   *sanitizer.Sanitizer
	chunker     chunker.Chunker
	loaders     loader.LoaderFactory
	pool        *workerpool.Pool
	logger      *logger.Logger
	maxFileSize int64
}

// NewPipeline wires a Pipeline. pool is only needed by ProcessBatch.
func NewPipeline(
	san *sanitizer.Sanitizer,
	ch chunker.Chunker,
	loaders loader.LoaderFactory,
	pool *workerpool.Pool,
	log *logger.Logger,
	cfg *Config,
) *Pipeline {
	if cfg == nil {
		cfg = &Config{}
	}
	if log == nil {
		log = logger.NewFromZap(nil)
	}
	return &Pipeline{
		sanitizer:   san,
		chunker:     ch,
		loaders:     loaders,
		pool:        pool,
		logger:      log.Named("pipeline"),
		maxFileSize: cfg.MaxFileSize,
	}
}

// WithChunker returns a copy of p that chunks with ch.
func (p *Pipeline) WithChunker(ch chunker.Chunker) *Pipeline {
	clone := *p
	clone.chunker = ch
	return &clone
}

// Chunker returns the configured chunker.
func (p *Pipeline) Chunker() chunker.Chunker {
	return p.chunker
}

// Process sanitizes raw text and chunks it. A chunk set that fails
// validation is still returned, with status invalid; errors are reserved
// for cancellation and chunker failures.
func (p *Pipeline) Process(ctx context.Context, raw string) (*types.DocumentResult, error) {
	start := time.Now()

	text, truncated := p.sanitizer.Clean(raw)

	chunks, err := p.chunker.Chunk(ctx, text)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrIngestChunkingFailed)
	}

	validation := chunker.ValidateChunks(chunker.Contents(chunks))
	status := types.DocumentStatusCompleted
	if !validation.Valid {
		status = types.DocumentStatusInvalid
	}

	result := &types.DocumentResult{
		Status:         status,
		Chunks:         chunks,
		Validation:     validation,
		Stats:          chunker.StatsForChunks(text, chunks),
		OriginalBytes:  len(raw),
		SanitizedBytes: len(text),
		Truncated:      truncated,
	}

	log := p.logger.WithContext(ctx)
	log.Debug("text processed",
		zap.Int("original_bytes", result.OriginalBytes),
		zap.Int("sanitized_bytes", result.SanitizedBytes),
		zap.Int("chunks", result.Stats.TotalChunks),
		zap.Int("max_chunk_tokens", result.Stats.MaxChunkTokens),
		zap.Duration("elapsed", time.Since(start)),
	)
	if !validation.Valid {
		log.Warn("chunk validation failed", zap.Strings("errors", validation.Errors))
	}

	return result, nil
}

// ProcessDocument extracts the text of doc with the loader for its file type
// and processes it. The file type is inferred from the name when unset.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc *types.Document) (*types.DocumentResult, error) {
	if doc == nil {
		return nil, apperrors.NewEmptyInputError()
	}
	ctx = logger.WithDocument(ctx, doc.Name)

	fileType, err := p.resolveFileType(doc)
	if err != nil {
		return nil, err
	}

	size := int64(len(doc.Content))
	if p.maxFileSize > 0 && size > p.maxFileSize {
		return nil, apperrors.NewFileTooLargeError(size, p.maxFileSize)
	}

	ld, err := p.loaders.CreateLoader(fileType)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrIngestInvalidFileType, fileType.String())
	}

	loaded, err := ld.Load(ctx, bytes.NewReader(doc.Content))
	if err != nil {
		p.logger.WithContext(ctx).Warn("text extraction failed",
			zap.String("file_type", fileType.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewExtractionError(fileType.String(), err)
	}

	result, err := p.Process(ctx, loaded.Content)
	if err != nil {
		return nil, err
	}
	result.Name = doc.Name

	p.logger.WithContext(ctx).Info("document processed",
		zap.String("file_type", fileType.String()),
		zap.String("status", result.Status.String()),
		zap.Int("chunks", result.Stats.TotalChunks),
		zap.Bool("truncated", result.Truncated),
	)
	return result, nil
}

func (p *Pipeline) resolveFileType(doc *types.Document) (types.FileType, error) {
	if doc.FileType != "" {
		if !doc.FileType.Valid() {
			return "", apperrors.NewUnsupportedFileTypeError(doc.FileType.String())
		}
		return doc.FileType, nil
	}

	fileType, ok := types.FileTypeFromName(doc.Name)
	if !ok {
		return "", apperrors.NewUnsupportedFileTypeError(fmt.Sprintf("cannot infer file type of %q", doc.Name))
	}
	return fileType, nil
}

// ProcessBatch processes docs concurrently on the worker pool. Results keep
// the order of docs; a failing document yields a failed result and does not
// affect the others.
func (p *Pipeline) ProcessBatch(ctx context.Context, docs []*types.Document) ([]*types.DocumentResult, error) {
	if p.pool == nil {
		return nil, fmt.Errorf("batch processing requires a worker pool")
	}

	pending := make([]<-chan workerpool.TaskResult, len(docs))
	for i, doc := range docs {
		doc := doc
		pending[i] = p.pool.SubmitWithResult(func() (interface{}, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return p.ProcessDocument(ctx, doc)
		})
	}

	results := make([]*types.DocumentResult, len(docs))
	failed := 0
	for i, ch := range pending {
		res := <-ch
		if res.Error != nil {
			results[i] = failedResult(docs[i], res.Error)
			failed++
			continue
		}
		results[i] = res.Data.(*types.DocumentResult)
	}

	p.logger.WithContext(ctx).Info("batch processed",
		zap.Int("documents", len(docs)),
		zap.Int("failed", failed),
	)
	return results, ctx.Err()
}

func failedResult(doc *types.Document, err error) *types.DocumentResult {
	name := ""
	if doc != nil {
		name = doc.Name
	}
	return &types.DocumentResult{
		Name:   name,
		Status: types.DocumentStatusFailed,
		Error:  apperrors.FormatError(apperrors.ExtractCode(err), apperrors.GetDetails(err)),
		Chunks: []*types.Chunk{},
		Validation: types.ValidationResult{
			Errors: []string{},
		},
	}
}
