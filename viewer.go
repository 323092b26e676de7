package sview

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/sview/internal/captioncache"
)

// Viewer is a live picture window. Producers on any goroutine call Submit;
// a single render goroutine owns the window and all GPU state.
type Viewer struct {
	cfg  Config
	open WindowOpener

	queue    pendingQueue
	stats    stats
	render   renderer
	captions *captioncache.Cache

	closed  atomic.Bool
	started atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}

	mu  sync.Mutex
	err error
}

// Stats is a snapshot of viewer counters.
type Stats struct {
	// Submitted counts accepted Submit calls.
	Submitted uint64

	// Merged counts submissions applied to cells.
	Merged uint64

	// Dropped counts submissions discarded by QueueLimit.
	Dropped uint64

	// Frames counts rendered frames.
	Frames uint64
}

// stats holds the live counters behind Stats.
type stats struct {
	submitted atomic.Uint64
	merged    atomic.Uint64
	dropped   atomic.Uint64
	frames    atomic.Uint64
}

// New creates a viewer. The window is opened by open when the render loop
// starts, via Run or Start.
func New(cfg Config, open WindowOpener, opts ...Option) *Viewer {
	var o viewerOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := &Viewer{
		cfg:      cfg,
		open:     open,
		done:     make(chan struct{}),
		captions: captioncache.New(0),
	}
	v.queue.limit = cfg.QueueLimit
	v.render = renderer{
		queue:   &v.queue,
		cells:   newCellTable(),
		widgets: newWidgetController(o.widgets, cfg),
		stats:   &v.stats,
	}
	return v
}

// Create creates a viewer and starts its render goroutine.
func Create(cfg Config, open WindowOpener, opts ...Option) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v := New(cfg, open, opts...)
	if err := v.Start(); err != nil {
		return nil, err
	}
	return v, nil
}

// Submit hands pic to the viewer for display in cell (col, row), replacing
// what the cell showed. Ownership of pic passes to the viewer. A non-empty
// caption is rasterized on the calling goroutine and drawn over the picture.
//
// Submit never blocks on rendering. Submissions to the same cell between two
// frames collapse to the last one.
func (v *Viewer) Submit(col, row int, pic *Picture, caption string, flags Flags, gridPitch int) error {
	if col < 0 || row < 0 {
		releasePicture(pic)
		return fmt.Errorf("%w: col=%d, row=%d", ErrInvalidCell, col, row)
	}
	if v.closed.Load() {
		releasePicture(pic)
		return ErrClosed
	}

	r := &pending{
		key:   cellKey{col: col, row: row},
		flags: flags,
		pitch: gridPitch,
	}
	r.content.p = pic
	if caption != "" {
		r.overlay.p = v.rasterizeCaption(caption)
	}

	v.stats.submitted.Add(1)
	if dropped := v.queue.push(r); dropped != nil {
		v.stats.dropped.Add(1)
		Logger().Warn("sview: queue full, dropping oldest submission",
			"col", dropped.key.col, "row", dropped.key.row, "limit", v.queue.limit)
		dropped.release()
	}
	// The loop may have exited between the closed check and the push.
	if v.closed.Load() {
		v.discardPending()
	}
	return nil
}

// rasterizeCaption returns a new picture of text, reusing the pixels of an
// earlier rasterization of the same caption.
func (v *Viewer) rasterizeCaption(text string) *Picture {
	key := captioncache.Key{
		Text:      text,
		GlyphSize: v.cfg.GlyphSize,
		MaxWidth:  v.cfg.CaptionMaxWidth,
		MaxHeight: v.cfg.CaptionMaxHeight,
	}
	bm := v.captions.GetOrCreate(key, func() captioncache.Bitmap {
		p := RasterizeText(key.MaxWidth, key.MaxHeight, key.GlyphSize, text)
		if p == nil {
			return captioncache.Bitmap{}
		}
		defer releasePicture(p)
		pix, _ := p.Pix()
		return captioncache.Bitmap{Width: p.Width, Height: p.Height, Pix: append([]byte(nil), pix...)}
	})
	if bm.Empty() {
		return nil
	}
	p, err := AllocPicture(bm.Width, bm.Height, FormatRGBA, false)
	if err != nil {
		panic(err)
	}
	copy(p.Planes[0], bm.Pix)
	return p
}

// discardPending releases every queued submission.
func (v *Viewer) discardPending() {
	for _, r := range v.queue.drain() {
		r.release()
	}
}

// Stats returns a snapshot of the viewer counters.
func (v *Viewer) Stats() Stats {
	return Stats{
		Submitted: v.stats.submitted.Load(),
		Merged:    v.stats.merged.Load(),
		Dropped:   v.stats.dropped.Load(),
		Frames:    v.stats.frames.Load(),
	}
}

// Start runs the render loop on a new goroutine. It returns ErrClosed if
// the viewer was already closed.
func (v *Viewer) Start() error {
	if v.closed.Load() {
		return ErrClosed
	}
	if !v.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.setCancel(cancel)
	go func() {
		v.finish(v.loop(ctx))
	}()
	return nil
}

// Run runs the render loop on the calling goroutine until ctx is done, the
// window is closed, or a device error occurs. It returns ErrClosed if the
// viewer was already closed.
func (v *Viewer) Run(ctx context.Context) error {
	if v.closed.Load() {
		return ErrClosed
	}
	if !v.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	v.setCancel(cancel)
	err := v.loop(ctx)
	v.finish(err)
	return err
}

// Close stops the render loop and rejects further submissions. It does not
// wait for the loop to exit; use Wait for that. Submissions still queued on
// a viewer that was never started are released.
func (v *Viewer) Close() {
	v.closed.Store(true)
	if !v.started.Load() {
		v.discardPending()
	}
	v.mu.Lock()
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (v *Viewer) setCancel(cancel context.CancelFunc) {
	v.mu.Lock()
	v.cancel = cancel
	v.mu.Unlock()
	if v.closed.Load() {
		cancel()
	}
}

// Wait blocks until the render loop exits and returns its error. It must
// only be called after Start or Run.
func (v *Viewer) Wait() error {
	<-v.done
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Done returns a channel closed when the render loop exits.
func (v *Viewer) Done() <-chan struct{} {
	return v.done
}

// finish records the loop result and discards queued submissions.
func (v *Viewer) finish(err error) {
	v.closed.Store(true)
	v.discardPending()
	v.mu.Lock()
	v.err = err
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	close(v.done)
}

// loop is the render goroutine body. It owns the window for its lifetime.
func (v *Viewer) loop(ctx context.Context) error {
	if v.open == nil {
		return ErrNoWindow
	}
	// Close may have raced with Start.
	if ctx.Err() != nil {
		return nil
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := v.open(v.cfg.Title, v.cfg.Width, v.cfg.Height)
	if err != nil {
		return fmt.Errorf("sview: open window: %w", err)
	}
	defer func() {
		v.render.release()
		if err := win.Close(); err != nil {
			Logger().Warn("sview: close window", "err", err)
		}
	}()
	Logger().Info("sview: window opened", "title", v.cfg.Title, "width", v.cfg.Width, "height", v.cfg.Height)

	dev := win.Device()
	width, height := win.Size()
	pacer := newPacer(v.cfg.MaxFPS)
	var events []Event

	for {
		if ctx.Err() != nil || win.ShouldClose() {
			Logger().Info("sview: render loop exit", "frames", v.stats.frames.Load())
			return nil
		}

		events = win.PollEvents(events[:0])
		for _, ev := range events {
			switch ev.Kind {
			case EventResize:
				width, height = ev.Width, ev.Height
			case EventClose:
				Logger().Info("sview: window closed", "frames", v.stats.frames.Load())
				return nil
			default:
				v.render.widgets.handle(ev)
			}
		}

		if err := v.render.frame(dev, width, height); err != nil {
			return err
		}
		if err := win.SwapBuffers(); err != nil {
			return fmt.Errorf("sview: swap buffers: %w", err)
		}
		pacer.wait(ctx)
	}
}

// pacer sleeps between frames to honour a frame rate cap. The zero pacer
// never sleeps.
type pacer struct {
	interval time.Duration
	next     time.Time
}

func newPacer(fps int) *pacer {
	if fps <= 0 {
		return &pacer{}
	}
	return &pacer{interval: time.Second / time.Duration(fps)}
}

// wait blocks until the next frame is due or ctx is done.
func (p *pacer) wait(ctx context.Context) {
	if p.interval == 0 {
		return
	}
	now := time.Now()
	if p.next.IsZero() || p.next.Before(now) {
		p.next = now
	}
	p.next = p.next.Add(p.interval)
	t := time.NewTimer(p.next.Sub(now))
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
