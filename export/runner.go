package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"picdoc/config"
	"picdoc/document"
	"picdoc/editor"
	"picdoc/misc"
	"picdoc/notify"
	"picdoc/render"
)

var (
	// ErrBusy rejects a second export while one is running. The document
	// stays editable, only the pipeline itself is single flight.
	ErrBusy = errors.New("an export is already running")

	ErrCancelled = errors.New("export cancelled")
)

// Result describes a finished export run.
type Result struct {
	Status Status
	Paths  []string
	Pages  int
	// 1-based indices of pages that could not be captured
	FailedPages []int
	// set when some image never became ready and rendered as a placeholder
	Degraded bool
}

type artifact struct {
	name string
	data []byte
}

// capturedPage keeps the page's own metadata and its 1-based position in the
// document, so naming stays stable even when earlier pages failed to capture.
type capturedPage struct {
	index int
	meta  document.Metadata
	data  []byte
}

// Runner drives the export pipeline for one document.
type Runner struct {
	cfg      *config.Config
	model    *document.Model
	editor   *editor.Controller
	gateway  Gateway
	notifier notify.Notifier
	log      *zap.Logger

	brokenGlyph []byte

	busy   atomic.Bool
	status atomic.Int64
}

type RunnerOption func(*Runner)

// WithBrokenGlyph supplies the placeholder drawn for images that never became
// ready.
func WithBrokenGlyph(svg []byte) RunnerOption {
	return func(r *Runner) { r.brokenGlyph = svg }
}

func NewRunner(cfg *config.Config, m *document.Model, ed *editor.Controller, gw Gateway, n notify.Notifier, log *zap.Logger, opts ...RunnerOption) *Runner {
	if n == nil {
		n = notify.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{
		cfg:      cfg,
		model:    m,
		editor:   ed,
		gateway:  gw,
		notifier: n,
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Status returns the stage of the current or last run.
func (r *Runner) Status() Status {
	return Status(r.status.Load())
}

func (r *Runner) setStatus(s Status) {
	r.status.Store(int64(s))
	r.log.Debug("export status", zap.Stringer("status", s))
}

func (r *Runner) fail(err error) (Result, error) {
	r.setStatus(StatusFailed)
	r.notifier.Notify(notify.Event{Level: notify.LevelError, Message: "export failed: " + err.Error()})
	return Result{Status: StatusFailed}, err
}

func (r *Runner) cancelled() (Result, error) {
	r.setStatus(StatusCancelled)
	r.notifier.Notify(notify.Event{Level: notify.LevelWarning, Message: "export cancelled"})
	return Result{Status: StatusCancelled}, ErrCancelled
}

// Export runs the pipeline to completion. Only one run at a time; concurrent
// calls get ErrBusy without touching the running one.
func (r *Runner) Export(ctx context.Context) (Result, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer r.busy.Store(false)

	r.setStatus(StatusPreparing)
	if r.editor != nil {
		// pending debounced edits must land before the snapshot
		r.editor.Flush()
	}
	snap, err := r.model.Snapshot()
	if err != nil {
		return r.fail(err)
	}

	degraded, err := r.waitForAssets(ctx, snap)
	if err != nil {
		return r.cancelled()
	}

	r.setStatus(StatusNormalizing)
	scale := r.cfg.Export.Quality.BaseScale() * r.cfg.Export.PixelRatio
	surface, err := render.NewSurface(render.Options{
		Mode:           render.ModePrint,
		Scale:          scale,
		BrokenGlyph:    r.brokenGlyph,
		UsePlaceholder: r.cfg.Document.Images.UsePlaceholder,
		Log:            r.log,
	})
	if err != nil {
		return r.fail(err)
	}
	defer func() {
		if derr := surface.Dispose(); derr != nil {
			r.log.Warn("surface dispose failed", zap.Error(derr))
		}
	}()
	for _, page := range snap.Pages {
		if _, err := surface.Settle(snap.Template, page); err != nil {
			return r.fail(err)
		}
	}

	captured, failedPages, err := r.capture(ctx, surface, snap)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return r.cancelled()
		}
		return r.fail(err)
	}

	r.setStatus(StatusComposing)
	artifacts, err := r.compose(snap, captured)
	if err != nil {
		return r.fail(err)
	}

	paths, err := r.persist(ctx, artifacts)
	if err != nil {
		if errors.Is(err, ErrSaveCancelled) {
			return r.cancelled()
		}
		return r.fail(err)
	}

	r.setStatus(StatusDone)
	r.notifier.Notify(notify.Event{Level: notify.LevelSuccess, Message: "export finished"})
	return Result{
		Status:      StatusDone,
		Paths:       paths,
		Pages:       len(captured),
		FailedPages: failedPages,
		Degraded:    degraded,
	}, nil
}

func (r *Runner) waitForAssets(ctx context.Context, snap document.Snapshot) (degraded bool, err error) {
	r.setStatus(StatusWaitingForAssets)
	timeout := r.cfg.Export.AssetTimeout()
	for _, page := range snap.Pages {
		for _, slot := range page.Slots {
			if slot.Image == nil {
				continue
			}
			if werr := slot.Image.WaitReady(ctx, timeout); werr != nil {
				if ctx.Err() != nil {
					return false, ctx.Err()
				}
				degraded = true
				r.log.Warn("image not ready, exporting degraded",
					zap.String("slot", slot.ID), zap.Error(werr))
				r.notifier.Notify(notify.Event{
					Level:   notify.LevelWarning,
					Message: "an image was not ready and will render as a placeholder",
				})
			}
		}
	}
	return degraded, nil
}

func (r *Runner) capture(ctx context.Context, surface *render.Surface, snap document.Snapshot) (captured []capturedPage, failedPages []int, err error) {
	r.setStatus(StatusCapturing)
	total := len(snap.Pages)
	for i, page := range snap.Pages {
		if ctx.Err() != nil {
			return nil, nil, ErrCancelled
		}
		img, perr := capturePage(surface, snap.Template, page)
		if perr == nil {
			var data []byte
			data, perr = encodePage(img, r.cfg.Export.Quality, surface.Scale())
			if perr == nil {
				captured = append(captured, capturedPage{index: i + 1, meta: page.Metadata, data: data})
				r.notifier.Notify(notify.Event{
					Level:   notify.LevelInfo,
					Message: "page captured",
					Page:    i + 1,
					Pages:   total,
				})
				continue
			}
		}
		failedPages = append(failedPages, i+1)
		r.log.Error("page capture failed", zap.Int("page", i+1), zap.Error(perr))
		r.notifier.Notify(notify.Event{
			Level:   notify.LevelError,
			Message: "page could not be captured and was skipped",
			Page:    i + 1,
			Pages:   total,
		})
	}
	if len(captured) == 0 {
		return nil, failedPages, errors.New("no pages could be captured")
	}
	return captured, failedPages, nil
}

// capturePage isolates a panicking page so the rest of the document still
// exports.
func capturePage(surface *render.Surface, tpl document.Template, page document.Page) (img *image.RGBA, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("page capture panicked: %v", p)
		}
	}()
	return surface.RenderPage(tpl, page)
}

func (r *Runner) compose(snap document.Snapshot, captured []capturedPage) ([]artifact, error) {
	format := r.cfg.Export.Format

	if format == config.OutputFmtPdf {
		// document metadata comes from the first page
		meta := snap.Pages[0].Metadata
		pages := make([][]byte, 0, len(captured))
		for _, cp := range captured {
			pages = append(pages, cp.data)
		}
		data, err := composePDF(pages, snap.Template.Orientation, meta, misc.GetAppName())
		if err != nil {
			return nil, err
		}
		name, err := BuildFileName(r.cfg, meta, 0, len(captured), format)
		if err != nil {
			return nil, err
		}
		return []artifact{{name: name, data: data}}, nil
	}

	// one image file per page, each named after that page's own metadata and
	// keeping its original number even when other pages failed
	artifacts := make([]artifact, 0, len(captured))
	for _, cp := range captured {
		page := 0
		if len(snap.Pages) > 1 {
			page = cp.index
		}
		name, err := BuildFileName(r.cfg, cp.meta, page, len(captured), format)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact{name: name, data: cp.data})
	}
	return artifacts, nil
}

func (r *Runner) persist(ctx context.Context, artifacts []artifact) ([]string, error) {
	r.setStatus(StatusPersisting)
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := r.gateway.RequestSaveTarget(ctx, a.name)
		if err == nil {
			err = r.gateway.WriteTarget(path, a.data)
		}
		if errors.Is(err, ErrSaveCancelled) {
			return nil, err
		}
		if err != nil {
			// keep the artifact, a temporary location beats losing the run
			fpath, ferr := r.persistFallback(a)
			if ferr != nil {
				return nil, multierr.Append(err, ferr)
			}
			r.log.Warn("primary save target failed, used temporary location",
				zap.String("path", fpath), zap.Error(err))
			r.notifier.Notify(notify.Event{
				Level:   notify.LevelWarning,
				Message: "output saved to a temporary location: " + fpath,
			})
			path = fpath
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Runner) persistFallback(a artifact) (string, error) {
	dir, err := os.MkdirTemp("", misc.GetAppName()+"-out-")
	if err != nil {
		return "", fmt.Errorf("unable to create temporary output directory: %w", err)
	}
	path := filepath.Join(dir, a.name)
	if err := os.WriteFile(path, a.data, 0644); err != nil {
		return "", fmt.Errorf("unable to write temporary output: %w", err)
	}
	return path, nil
}
