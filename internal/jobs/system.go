package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/clauseguard/clauseguard/internal/analysis"
	"github.com/clauseguard/clauseguard/internal/contracts"
	"github.com/clauseguard/clauseguard/internal/extraction"
	"github.com/clauseguard/clauseguard/pkg/lifecycle"
	"github.com/clauseguard/clauseguard/pkg/storage"
)

const (
	// minSubmissionChars is the minimum trimmed length accepted for analysis.
	minSubmissionChars = 100
	// analysisCharLimit bounds the text sent to the model. Truncation is a
	// hard character count, not token-aware: longer documents are analyzed
	// on their prefix only.
	analysisCharLimit = 15000

	defaultFilename = "Pasted Contract"
)

// ResultSink receives completed analyses for durable storage.
// contracts.System satisfies it.
type ResultSink interface {
	StoreResult(ctx context.Context, cmd contracts.StoreCommand) (*contracts.Contract, error)
}

// System defines the public contract for analysis job operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Submit validates and enqueues a submission, returning the new job's
	// snapshot immediately. It never blocks on extraction or the remote call.
	Submit(ctx context.Context, cmd SubmitCommand) (Snapshot, error)
	// Status returns a consistent snapshot of the job. Reading never
	// advances the job.
	Status(id uuid.UUID) (Snapshot, error)
	// Start launches the worker pool under the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// Options configures the orchestrator's worker pool and timeouts.
type Options struct {
	Workers     int
	QueueSize   int
	MaxJobs     int
	HardTimeout time.Duration
	SoftTimeout time.Duration
}

type submission struct {
	id       uuid.UUID
	text     string
	data     []byte
	filename string
}

type orchestrator struct {
	store       *store
	queue       chan submission
	client      analysis.Client
	sink        ResultSink
	archive     storage.System
	logger      *slog.Logger
	workers     int
	hardTimeout time.Duration
	softTimeout time.Duration
}

// New creates the job orchestrator implementing the System interface.
// archive may be nil; when present, original uploads are copied to blob
// storage for audit before analysis.
func New(
	client analysis.Client,
	sink ResultSink,
	archive storage.System,
	logger *slog.Logger,
	opts Options,
) System {
	return &orchestrator{
		store:       newStore(opts.MaxJobs),
		queue:       make(chan submission, opts.QueueSize),
		client:      client,
		sink:        sink,
		archive:     archive,
		logger:      logger.With("system", "jobs"),
		workers:     opts.Workers,
		hardTimeout: opts.HardTimeout,
		softTimeout: opts.SoftTimeout,
	}
}

func (o *orchestrator) Handler(maxUploadSize int64) *Handler {
	return NewHandler(o, o.archive, o.logger, maxUploadSize)
}

func (o *orchestrator) Submit(ctx context.Context, cmd SubmitCommand) (Snapshot, error) {
	sub := submission{
		data:     cmd.Data,
		filename: cmd.Filename,
	}

	if cmd.Data == nil {
		text := strings.TrimSpace(cmd.Text)
		if utf8.RuneCountInString(text) < minSubmissionChars {
			return Snapshot{}, ErrInputTooShort
		}
		sub.text = text
		if sub.filename == "" {
			sub.filename = defaultFilename
		}
	}

	snap := o.store.create(sub.filename)
	sub.id = snap.ID

	select {
	case o.queue <- sub:
	default:
		o.store.remove(snap.ID)
		return Snapshot{}, ErrQueueFull
	}

	o.logger.Info("job submitted", "id", snap.ID, "filename", sub.filename)
	return snap, nil
}

func (o *orchestrator) Status(id uuid.UUID) (Snapshot, error) {
	snap, ok := o.store.snapshot(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

func (o *orchestrator) Start(lc *lifecycle.Coordinator) error {
	o.logger.Info("starting job workers", "workers", o.workers)

	g, ctx := errgroup.WithContext(lc.Context())
	for range o.workers {
		g.Go(func() error {
			o.runWorker(ctx)
			return nil
		})
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		g.Wait()
		o.logger.Info("job workers stopped")
	})

	return nil
}

func (o *orchestrator) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sub := <-o.queue:
			o.run(ctx, sub)
		}
	}
}

// run executes one job under its wall-clock ceiling. The soft threshold
// raises a warning without failing the job; hitting the hard timeout fails
// it with ErrTimedOut.
func (o *orchestrator) run(ctx context.Context, sub submission) {
	jobCtx, cancel := context.WithTimeout(ctx, o.hardTimeout)
	defer cancel()

	slow := time.AfterFunc(o.softTimeout, func() {
		o.logger.Warn(
			"job exceeding soft deadline",
			"id", sub.id,
			"soft_timeout", o.softTimeout,
		)
	})
	defer slow.Stop()

	if err := o.execute(jobCtx, sub); err != nil {
		if errors.Is(jobCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrTimedOut, o.hardTimeout)
		}
		o.store.fail(sub.id, err)
		o.logger.Error("job failed", "id", sub.id, "error", err)
		return
	}

	o.logger.Info("job completed", "id", sub.id)
}

// execute drives one job through the pipeline: extraction when the input is
// a raw document, then the remote analysis call, normalization, and the
// persistence hand-off. Extraction and analysis are strictly sequential.
func (o *orchestrator) execute(ctx context.Context, sub submission) error {
	text := sub.text

	if sub.data != nil {
		o.store.advance(sub.id, StateExtracting, 25, "Extracting document text...")

		extracted, err := extraction.Extract(sub.data, sub.filename)
		if err != nil {
			return err
		}
		text = extracted.Text

		o.logger.Info(
			"text extracted",
			"id", sub.id,
			"method", extracted.Method,
			"chars", len(text),
		)

		if utf8.RuneCountInString(text) < minSubmissionChars {
			return ErrInputTooShort
		}
	}

	o.store.advance(sub.id, StateAnalyzing, 50, "AI is analyzing your contract...")

	raw, err := o.client.Generate(
		ctx,
		analysis.SystemPrompt,
		analysis.AnalysisPrompt(truncate(text, analysisCharLimit)),
	)
	if err != nil {
		return err
	}

	result, err := analysis.Normalize(raw)
	if err != nil {
		return err
	}

	o.store.advance(sub.id, StateAnalyzing, 90, "Saving analysis results...")

	contract, err := o.sink.StoreResult(ctx, contracts.StoreCommand{
		Filename: sub.filename,
		RawText:  text,
		Result:   result,
	})
	if err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}

	o.store.complete(sub.id, contract.ID)
	return nil
}

// truncate returns the first limit characters of s, preserving rune
// boundaries.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
