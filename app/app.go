package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/vidcapture/vcs/alias"
	"github.com/vidcapture/vcs/antitear"
	"github.com/vidcapture/vcs/bus"
	"github.com/vidcapture/vcs/capture"
	"github.com/vidcapture/vcs/filter"
	"github.com/vidcapture/vcs/frame"
	"github.com/vidcapture/vcs/mainloop"
	"github.com/vidcapture/vcs/scaler"
	"github.com/vidcapture/vcs/videomode"
)

// State holds the live, user-toggleable switches spec.md's AppState
// groups alongside the rest of the core (spec.md §3, "AppState").
type State struct {
	EcoMode         bool
	AntiTearEnabled bool
}

// App wires every core component together, replacing the source
// implementation's global singletons (spec.md Design Notes §9).
type App struct {
	Logger *slog.Logger
	Events *bus.Events

	Aliases  *alias.Table
	Backend  capture.Backend
	Filters  *filter.Graph
	AntiTear *antitear.Engine
	Scaler   scaler.Scaler

	Coordinator *capture.Coordinator
	Resolver    *videomode.Resolver
	Loop        *mainloop.Loop

	State State

	// OnPresentableFrame, if set, receives the fully processed pixel
	// buffer and the resolution it now presents at (post filter graph,
	// post anti-tear, post scaler) — the hand-off point to the external
	// presentation/recording layer (spec.md §2, "scaler (external) ->
	// presentation/recording").
	OnPresentableFrame func(pixels []byte, r frame.Resolution)

	targetResolution frame.Resolution
}

// Option configures an App at construction time, following the teacher's
// functional-options pattern (device.Option in device_config.go).
type Option func(*App)

// WithLogger overrides the default tint-backed logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.Logger = l }
}

// WithAliases overrides the resolution alias table (default: empty).
func WithAliases(t *alias.Table) Option {
	return func(a *App) { a.Aliases = t }
}

// WithFilterGraph overrides the filter graph (default: empty, enabled).
func WithFilterGraph(g *filter.Graph) Option {
	return func(a *App) { a.Filters = g }
}

// WithScaler overrides the scaler (default: scaler.Bilinear{}).
func WithScaler(s scaler.Scaler) Option {
	return func(a *App) { a.Scaler = s }
}

// WithTargetResolution sets the resolution the scaler resizes every
// processed frame to.
func WithTargetResolution(r frame.Resolution) Option {
	return func(a *App) { a.targetResolution = r }
}

// WithAntiTearConfig overrides the anti-tear engine's tuning parameters.
func WithAntiTearConfig(cfg antitear.Config) Option {
	return func(a *App) { a.AntiTear.SetConfig(cfg) }
}

// New constructs an App around backend, wiring the event bus, the video
// mode resolver, the anti-tear engine, and the main loop, and subscribing
// the processing pipeline to NewCapturedFrame (spec.md §2's data flow:
// "backend -> event queue -> coordinator -> ... -> filter graph ->
// anti-tear -> scaler -> presentation/recording").
func New(backend capture.Backend, opts ...Option) *App {
	a := &App{
		Logger:           defaultLogger(),
		Events:           bus.New(),
		Aliases:          alias.NewTable(),
		Backend:          backend,
		Filters:          filter.NewGraph(),
		Scaler:           scaler.Bilinear{},
		targetResolution: backend.CaptureResolution(),
	}
	a.AntiTear = antitear.NewEngine(antitear.Config{}, frame.MaxResolution, a.Logger)
	initialLogger := a.Logger

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger != initialLogger {
		// WithLogger replaced the logger after the engine was built.
		a.AntiTear = antitear.NewEngine(a.AntiTear.Config(), frame.MaxResolution, a.Logger)
	}

	a.Coordinator = capture.NewCoordinator(backend, a.Events, a.Logger)
	a.Resolver = videomode.New(a.Aliases, backend, a.Events, a.Logger)
	a.Loop = mainloop.New(a.Coordinator)

	a.Events.NewCapturedFrame.Listen(a.handleNewFrame)
	a.Events.UnrecoverableError.Listen(func(struct{}) {
		a.Logger.Error("unrecoverable capture error, exiting")
	})

	return a
}

func defaultLogger() *slog.Logger {
	w := io.Writer(os.Stderr)
	color := isatty.IsTerminal(os.Stderr.Fd())
	handler := tint.NewHandler(w, &tint.Options{Level: slog.LevelInfo, NoColor: !color})
	return slog.New(handler)
}

// handleNewFrame runs the capture -> filter -> anti-tear -> scale pipeline
// for one captured frame and forwards the result to OnPresentableFrame.
func (a *App) handleNewFrame(cf *frame.CapturedFrame) {
	pixels := append([]byte(nil), cf.Slice()...)
	r := cf.Resolution

	pixels = a.Filters.Apply(pixels, r, a.targetResolution, cf.Timestamp)

	if a.State.AntiTearEnabled {
		pixels = a.AntiTear.Process(pixels, r)
	}

	if a.Scaler != nil && a.targetResolution != (frame.Resolution{}) {
		pixels = a.Scaler.Scale(pixels, r, a.targetResolution)
		r = a.targetResolution
	}

	if a.OnPresentableFrame != nil {
		a.OnPresentableFrame(pixels, r)
	}
}

// RunOnce drives one iteration of the main loop (spec.md §4.7).
func (a *App) RunOnce(presentTick func()) {
	a.Loop.EcoMode = a.State.EcoMode
	a.Loop.RunOnce(presentTick)
}
