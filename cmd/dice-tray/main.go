package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dice-tray/audio"
	"github.com/lixenwraith/dice-tray/config"
	"github.com/lixenwraith/dice-tray/engine"
	"github.com/lixenwraith/dice-tray/event"
	"github.com/lixenwraith/dice-tray/history"
	"github.com/lixenwraith/dice-tray/parameter"
	"github.com/lixenwraith/dice-tray/render"
	"github.com/lixenwraith/dice-tray/status"
	"github.com/lixenwraith/dice-tray/storage/sqlite"
)

var (
	dieFlag         = flag.String("die", "", "die to roll: d4, d6, d8, d10, d12, d20")
	calibrationFlag = flag.String("calibration", "", "JSON calibration table, overrides -die")
	seedFlag        = flag.Int64("seed", 0, "throw random seed, 0 seeds from the clock")
	historyFlag     = flag.String("history", "", "SQLite file recording resolved rolls")
	muteFlag        = flag.Bool("mute", false, "start without sound")
	debugFlag       = flag.Bool("debug", false, "write logs/dice-tray.log")
)

const helpText = "drag the die to throw  r/space roll  m mute  q quit"

func main() {
	var screen tcell.Screen

	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDICE-TRAY CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newApp(cfg, screen)
	defer a.close()

	if cfg.Audio {
		a.startAudio()
	}
	if cfg.HistoryPath != "" {
		a.startHistory(ctx, cfg.HistoryPath)
	}

	a.run()
}

// applyFlags overrides environment values with explicitly set flags
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "die":
			cfg.Die = *dieFlag
		case "calibration":
			cfg.Calibration = *calibrationFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "history":
			cfg.HistoryPath = *historyFlag
		case "mute":
			cfg.Audio = !*muteFlag
		case "debug":
			cfg.Debug = *debugFlag
		}
	})
}

// app owns the die, the renderer and the optional audio and history sinks
// Everything except the history writer runs on the main goroutine
type app struct {
	cfg      config.Config
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	bus      *event.Bus
	status   *status.Registry

	die      *engine.Die
	setupErr error

	sound    *audio.SoundManager
	recorder *history.Recorder
	store    *sqlite.Store
	detach   []func()

	dragging bool
	result   int
}

func newApp(cfg config.Config, screen tcell.Screen) *app {
	a := &app{
		cfg:      cfg,
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen, render.ThemeFromStrings(cfg.DieColor, cfg.TrayColor)),
		bus:      event.NewBus(),
		status:   status.NewRegistry(),
	}

	rect := a.renderer.TrayRect()
	a.die, a.setupErr = cfg.NewDie(engine.NewMonotonicTimeProvider(), a.bus, a.status, float64(rect.W), float64(rect.H))
	if a.setupErr != nil {
		log.Printf("setup failed: %v", a.setupErr)
		return a
	}

	a.detach = append(a.detach, a.die.OnRollComplete(func(face int) {
		a.result = face
		log.Printf("rolled %d of %d", face, a.die.Faces())
	}))
	id := a.bus.Subscribe(func(event.Event) { a.result = 0 }, event.EventRollStarted)
	a.detach = append(a.detach, func() { a.bus.Unsubscribe(id) })
	return a
}

func (a *app) startAudio() {
	cfg := audio.DefaultAudioConfig()
	sm := audio.NewSoundManager(cfg)
	if err := sm.Initialize(); err != nil {
		log.Printf("audio unavailable: %v", err)
		return
	}
	a.sound = sm
	a.detach = append(a.detach, sm.Attach(a.bus))
}

func (a *app) startHistory(ctx context.Context, path string) {
	store, err := sqlite.Open(path)
	if err != nil {
		log.Printf("history unavailable: %v", err)
		return
	}
	a.store = store
	a.recorder = history.NewRecorder(store, a.cfg.DieLabel(), parameter.HistoryQueueSize)
	a.recorder.Start(ctx)
	a.detach = append(a.detach, a.recorder.Attach(a.bus))
}

func (a *app) close() {
	if a.die != nil {
		a.die.Destroy()
	}
	for _, fn := range a.detach {
		fn()
	}
	if a.recorder != nil {
		a.recorder.Close()
		written, dropped, failed := a.recorder.Stats()
		log.Printf("history: written=%d dropped=%d failed=%d", written, dropped, failed)
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("history close: %v", err)
		}
	}
	if a.sound != nil {
		a.sound.Cleanup()
	}
}

// run is the frame loop; it returns on quit or when the terminal closes
func (a *app) run() {
	events := make(chan tcell.Event, 256)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(a.screen.PollEvent, events, done)

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.frame()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done closes
// events is closed when the terminal stops producing events
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the user quits
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
		w, h := ev.Size()
		a.renderer.Resize(w, h)
		if a.die != nil {
			rect := a.renderer.TrayRect()
			a.die.Resize(float64(rect.W), float64(rect.H))
		}
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'r', ' ':
		if a.die == nil {
			return true
		}
		if _, err := a.die.Roll(); err != nil && !errors.Is(err, engine.ErrRollInFlight) {
			log.Printf("roll: %v", err)
		}
	case 'm':
		if a.sound != nil {
			muted := a.sound.ToggleMute()
			log.Printf("muted=%v", muted)
		}
	}
	return true
}

// handleMouse maps button one onto the die's pointer gesture
func (a *app) handleMouse(ev *tcell.EventMouse) {
	if a.die == nil {
		return
	}
	x, y := a.renderer.ToDevice(ev.Position())
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !a.dragging:
		a.dragging = a.die.PointerDown(x, y)
	case held && a.dragging:
		a.die.PointerMove(x, y)
	case !held && a.dragging:
		a.dragging = false
		a.die.PointerUp(x, y)
	}
}

func (a *app) frame() {
	if a.die == nil {
		a.renderer.RenderUnavailable(a.setupErr)
		return
	}

	a.die.Frame()

	top, _ := a.die.CurrentTopFace()
	a.renderer.RenderFrame(render.Frame{
		Pose:    a.die.Pose(),
		Radius:  a.die.Radius(),
		View:    a.die.View(),
		Phase:   a.die.Phase(),
		TopFace: top,
		Faces:   a.die.Faces(),
		Die:     a.cfg.DieLabel(),
		Result:  a.result,
		Metrics: a.status.Snapshot(),
		Help:    helpText,
	})
}
