package service

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/torp-app/devis-ingest/internal/knowledge/chunker"
	"github.com/torp-app/devis-ingest/internal/knowledge/processor"
	"github.com/torp-app/devis-ingest/internal/knowledge/sanitizer"
	"github.com/torp-app/devis-ingest/internal/knowledge/types"
	apperrors "github.com/torp-app/devis-ingest/internal/pkg/errors"
	"github.com/torp-app/devis-ingest/internal/pkg/logger"
	"github.com/torp-app/devis-ingest/internal/pkg/response"
	"go.uber.org/zap"
)

// Config holds the defaults applied to per-request chunker overrides.
type Config struct {
	Strategy    types.ChunkStrategy
	Encoding    string
	MaxFileSize int64
}

// ChunkingService exposes sanitizing, chunking and validation over HTTP.
type ChunkingService struct {
	pipeline  *processor.Pipeline
	sanitizer *sanitizer.Sanitizer
	factory   *chunker.Factory
	config    *Config
	logger    *logger.Logger
}

// NewChunkingService creates the service. factory builds chunkers for
// requests that override the pipeline's strategy or budget.
func NewChunkingService(
	pipeline *processor.Pipeline,
	san *sanitizer.Sanitizer,
	factory *chunker.Factory,
	config *Config,
	log *logger.Logger,
) *ChunkingService {
	if config == nil {
		config = &Config{}
	}
	return &ChunkingService{
		pipeline:  pipeline,
		sanitizer: san,
		factory:   factory,
		config:    config,
		logger:    log.Named("chunking"),
	}
}

// RegisterRoutes mounts the ingestion endpoints on r.
func (s *ChunkingService) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/sanitize", s.Sanitize)

	chunks := r.Group("/chunks")
	{
		chunks.POST("", s.ChunkText)
		chunks.POST("/file", s.ChunkFile)
		chunks.POST("/validate", s.Validate)
	}
}

// Sanitize cleans text and applies the byte budget, optionally overridden per request.
func (s *ChunkingService) Sanitize(c *gin.Context) {
	var req SanitizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleError(c, apperrors.NewInvalidRequestError(err.Error()))
		return
	}
	if req.MaxBytes < 0 {
		response.HandleError(c, apperrors.NewInvalidChunkingError("max_bytes must not be negative"))
		return
	}

	san := s.sanitizer
	if req.MaxBytes > 0 {
		san = sanitizer.New(&sanitizer.Config{MaxBytes: req.MaxBytes}, s.logger.WithContext(c.Request.Context()).Logger)
	}
	text, truncated := san.Clean(req.Text)

	response.Success(c, &SanitizeResponse{
		Text:           text,
		OriginalBytes:  len(req.Text),
		SanitizedBytes: len(text),
		Truncated:      truncated,
	})
}

// ChunkText sanitizes, chunks and validates the text of a JSON body.
func (s *ChunkingService) ChunkText(c *gin.Context) {
	var req ChunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleError(c, apperrors.NewInvalidRequestError(err.Error()))
		return
	}
	if req.Text == "" {
		response.HandleError(c, apperrors.NewEmptyInputError())
		return
	}

	pipeline, err := s.pipelineFor(&req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result, err := pipeline.Process(c.Request.Context(), req.Text)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, toChunkResponse(result, req.StatsOnly))
}

func (s *ChunkingService) pipelineFor(req *ChunkRequest) (*processor.Pipeline, error) {
	if !req.overridesChunker() {
		return s.pipeline, nil
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = s.config.Strategy
	}
	if strategy != "" && !strategy.Valid() {
		return nil, apperrors.NewInvalidChunkingError("unknown strategy " + strategy.String())
	}

	size := req.MaxTokens
	if size == 0 {
		size = s.pipeline.Chunker().ChunkSize()
	}

	ch, err := s.factory.CreateChunker(&chunker.CreateChunkerConfig{
		Strategy: strategy,
		Size:     size,
		Overlap:  req.Overlap,
		Encoding: s.config.Encoding,
	})
	if err != nil {
		return nil, apperrors.NewInvalidChunkingError(err.Error())
	}
	return s.pipeline.WithChunker(ch), nil
}

// ChunkFile extracts and chunks uploaded files. One "file" part returns that
// document's result; several parts are processed as a batch and return every
// result in upload order.
func (s *ChunkingService) ChunkFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.HandleError(c, apperrors.NewInvalidRequestError("multipart form with a 'file' field is required"))
		return
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		response.HandleError(c, apperrors.NewInvalidRequestError("field 'file' is required"))
		return
	}
	fileType := types.FileType(c.PostForm("file_type"))
	statsOnly := c.PostForm("stats_only") == "true"

	docs := make([]*types.Document, 0, len(headers))
	for _, header := range headers {
		doc, err := s.readDocument(header, fileType)
		if err != nil {
			response.HandleError(c, err)
			return
		}
		docs = append(docs, doc)
	}

	ctx := c.Request.Context()
	if len(docs) == 1 {
		result, err := s.pipeline.ProcessDocument(ctx, docs[0])
		if err != nil {
			s.logger.WithContext(ctx).Warn("file rejected",
				zap.String("filename", docs[0].Name),
				zap.Error(err))
			response.HandleError(c, err)
			return
		}
		response.Success(c, toChunkResponse(result, statsOnly))
		return
	}

	results, err := s.pipeline.ProcessBatch(ctx, docs)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if statsOnly {
		for _, r := range results {
			r.Chunks = nil
		}
	}
	response.Success(c, &BatchResponse{Documents: results})
}

func (s *ChunkingService) readDocument(header *multipart.FileHeader, fileType types.FileType) (*types.Document, error) {
	if s.config.MaxFileSize > 0 && header.Size > s.config.MaxFileSize {
		return nil, apperrors.NewFileTooLargeError(header.Size, s.config.MaxFileSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidParams, "failed to open uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternalServer, "failed to read uploaded file")
	}

	return &types.Document{
		Name:     header.Filename,
		FileType: fileType,
		Content:  content,
	}, nil
}

// Validate checks an arbitrary JSON value as a chunk set. Validation is
// advisory: the verdict is returned with status 200 whatever it is; only an
// unparseable body is an error.
func (s *ChunkingService) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleError(c, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	result := chunker.ValidateChunks(req.Chunks)
	if !result.Valid {
		response.SuccessWithMessage(c, "chunks failed validation", result)
		return
	}
	response.Success(c, result)
}
