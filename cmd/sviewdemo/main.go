// Command sviewdemo streams synthetic pictures into an sview window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sview"
	"github.com/gogpu/sview/backend/glfwgl"
	"github.com/gogpu/sview/backend/soft"
	"github.com/gogpu/sview/integration/gpucanvas"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		config   = flag.String("config", "", "TOML or YAML config file")
		title    = flag.String("title", "", "window title (overrides config)")
		width    = flag.Int("width", 0, "window width (overrides config)")
		height   = flag.Int("height", 0, "window height (overrides config)")
		fps      = flag.Int("fps", -1, "frame rate cap, 0 for uncapped (overrides config)")
		headless = flag.Bool("headless", false, "render in memory instead of opening a window")
		frames   = flag.Int("frames", 60, "frames to render in headless mode")
		snapshot = flag.String("snapshot", "sviewdemo.png", "PNG written after headless rendering")
		canvas   = flag.Bool("canvas", false, "hand headless frames to a gpucanvas presenter")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	sview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := sview.DefaultConfig().WithTitle("sviewdemo")
	if *config != "" {
		var err error
		if cfg, err = sview.LoadConfig(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *title != "" {
		cfg = cfg.WithTitle(*title)
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *fps >= 0 {
		cfg = cfg.WithMaxFPS(*fps)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	var speed, pitch atomic.Int64
	speed.Store(4)
	pitch.Store(20)
	widgets := []sview.Widget{
		{Name: "speed", Min: 0, Max: 32, Value: &speed},
		{Name: "grid", Min: 0, Max: 100, Value: &pitch, Updated: func(w *sview.Widget) {
			sview.Logger().Debug("sviewdemo: grid pitch", "value", w.Value.Load())
		}},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *headless {
		if err := runHeadless(ctx, cfg, widgets, &speed, &pitch, *frames, *snapshot, *canvas); err != nil {
			log.Fatalf("Headless run failed: %v", err)
		}
		return
	}

	v := sview.New(cfg, glfwgl.Open, sview.WithWidgets(widgets))
	var wg sync.WaitGroup
	prodCtx, cancel := context.WithCancel(ctx)
	wg.Go(func() { produce(prodCtx, v, &speed, &pitch) })

	err := v.Run(ctx)
	cancel()
	wg.Wait()
	if err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}

// runHeadless renders frames into memory and saves the last one.
func runHeadless(ctx context.Context, cfg sview.Config, widgets []sview.Widget, speed, pitch *atomic.Int64, frames int, path string, present bool) error {
	win := soft.NewWindow(cfg.Title, cfg.Width, cfg.Height)
	if present {
		c, err := gpucanvas.Attach(win, offscreenProvider{})
		if err != nil {
			return err
		}
		defer func() {
			w, h := c.Size()
			log.Printf("Canvas holds a %dx%d frame (pending upload: %v)", w, h, c.IsDirty())
			c.Close()
		}()
	}
	v, err := sview.Create(cfg, soft.Opener(win), sview.WithWidgets(widgets))
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	prodCtx, cancel := context.WithCancel(ctx)
	wg.Go(func() { produce(prodCtx, v, speed, pitch) })

wait:
	for win.Swaps() < frames {
		select {
		case <-ctx.Done():
			break wait
		case <-v.Done():
			break wait
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	wg.Wait()
	v.Close()
	if err := v.Wait(); err != nil {
		return err
	}
	if err := win.SavePNG(path); err != nil {
		return err
	}
	log.Printf("Rendered %d frames, saved %s", win.Swaps(), path)
	return nil
}

// produce submits a moving BGRA pattern to cell (0,0) and an intensity ramp
// with a grid to cell (1,0) until ctx is done.
func produce(ctx context.Context, v *sview.Viewer, speed, pitch *atomic.Int64) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()

	for n := 0; ; n++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		shift := n * int(speed.Load())
		pattern, err := bgraPattern(640, 480, shift)
		if err != nil {
			sview.Logger().Error("sviewdemo: alloc", "err", err)
			return
		}
		if err := v.Submit(0, 0, pattern, fmt.Sprintf("frame %d", n), 0, 0); err != nil {
			return
		}

		ramp, err := intensityRamp(320, 240, shift)
		if err != nil {
			sview.Logger().Error("sviewdemo: alloc", "err", err)
			return
		}
		flags := sview.FlagCrosshair | sview.FlagCrosshairGreen
		if err := v.Submit(1, 0, ramp, "intensity", flags, int(pitch.Load())); err != nil {
			return
		}
	}
}

// bgraPattern fills a BGRA picture with channel ramps of different slopes.
func bgraPattern(w, h, shift int) (*sview.Picture, error) {
	p, err := sview.AllocPicture(w, h, sview.FormatBGRA, false)
	if err != nil {
		return nil, err
	}
	pix, stride := p.Pix()
	for y := range h {
		row := pix[y*stride:]
		for x := range w {
			i := y*w + x + shift
			row[x*4+0] = byte(i)
			row[x*4+1] = byte(i * 3)
			row[x*4+2] = byte(i * 5)
			row[x*4+3] = 0xff
		}
	}
	return p, nil
}

// intensityRamp fills a single-channel picture with a diagonal ramp.
func intensityRamp(w, h, shift int) (*sview.Picture, error) {
	p, err := sview.AllocPicture(w, h, sview.FormatIntensity, false)
	if err != nil {
		return nil, err
	}
	pix, stride := p.Pix()
	for y := range h {
		for x := range w {
			pix[y*stride+x] = byte(x + y + shift)
		}
	}
	return p, nil
}

// offscreenProvider stands in for a gogpu window when the demo has none.
// Frames reach the canvas but are never drawn.
type offscreenProvider struct{}

func (offscreenProvider) Device() gpucontext.Device   { return nil }
func (offscreenProvider) Queue() gpucontext.Queue     { return nil }
func (offscreenProvider) Adapter() gpucontext.Adapter { return nil }
func (offscreenProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
