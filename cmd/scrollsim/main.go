// Command scrollsim is an interactive demonstration of the pacing engine:
// a synthetic scrollable document whose reveal, lighting, and parallax
// effects are driven entirely by published progress frames.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/lixenwraith/scrollpace/config"
	"github.com/lixenwraith/scrollpace/core"
	"github.com/lixenwraith/scrollpace/engine"
	"github.com/lixenwraith/scrollpace/quality"
	"github.com/lixenwraith/scrollpace/render"
	"github.com/lixenwraith/scrollpace/window"
)

var (
	configFlag  = flag.String("config", "", "Window definition YAML file")
	hintFlag    = flag.String("hint", "medium", "Device capability hint: low, medium, high")
	modeFlag    = flag.String("mode", "full", "Computation mode: full, indicator-only")
	reducedFlag = flag.Bool("reduced-motion", false, "Start with reduced motion asserted")
	audioFlag   = flag.Bool("audio", false, "Audible cue on quality tier change")
	logFlag     = flag.String("log", "", "Append scheduler logs to this file")
	verboseFlag = flag.Int("v", 0, "Log verbosity")
)

// redrawInterval paces the demo's own render loop; the engine publishes
// independently and the LatestSink mailbox absorbs the rate mismatch
const redrawInterval = 33 * time.Millisecond

func main() {
	// Panic Recovery: Ensure terminal is reset even if the demo crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logger := buildLogger()

	hint := quality.ParseHint(*hintFlag)
	mode := engine.ParseMode(*modeFlag)
	tick := time.Duration(0)

	registry := window.NewRegistry()
	if *configFlag != "" {
		cfg, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Apply(registry); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register windows: %v\n", err)
			os.Exit(1)
		}
		if cfg.DeviceHint != "" {
			hint = cfg.Hint()
		}
		if cfg.Mode != "" {
			mode = cfg.SchedulerMode()
		}
		tick = time.Duration(cfg.TickInterval)
	} else {
		registerDefaultWindows(registry)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashCleanup(func() { screen.Fini() })
	defer screen.Fini()

	_, rows := screen.Size()
	source := newDocSource(float64(rows))

	sink := render.NewLatestSink()

	sched, err := engine.NewScheduler(engine.Options{
		Source:       source,
		Registry:     registry,
		Sink:         sink,
		Logger:       logger,
		Hint:         hint,
		Mode:         mode,
		TickInterval: tick,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to create scheduler: %v\n", err)
		os.Exit(1)
	}

	sched.Start()
	defer sched.Stop()

	var cue *tierCue
	if *audioFlag {
		cue = newTierCue()
		defer cue.close()
	}

	if *reducedFlag {
		sched.SetReducedMotion(true)
	}
	sched.OnScroll() // Seed the first frame

	runUI(screen, source, sink, sched, cue)
}

// buildLogger wires stdr when a log file is requested, discard otherwise
// The TUI owns stdout, so logs never go to the terminal
func buildLogger() logr.Logger {
	if *logFlag == "" {
		return logr.Discard()
	}
	f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	stdr.SetVerbosity(*verboseFlag)
	return stdr.New(log.New(f, "", log.LstdFlags)).WithName("scrollsim")
}

// registerDefaultWindows installs the built-in demo effects
func registerDefaultWindows(reg *window.Registry) {
	specs := []window.Spec{
		{ID: "hero-reveal", Start: window.Px(0), Length: window.VH(120)},
		{ID: "section-light", Start: window.VH(80), Length: window.VH(200), Cap: 90},
		{ID: "deep-parallax", Start: window.VH(50), Length: window.VH(400)},
		{ID: "footer-glow", Start: window.VH(500), Length: window.VH(100)},
	}
	for _, s := range specs {
		if _, err := reg.Register(s); err != nil {
			panic(err)
		}
	}
}

// runUI owns the terminal: polls input, redraws from the sink mailbox
func runUI(screen tcell.Screen, source *docSource, sink *render.LatestSink, sched *engine.Scheduler, cue *tierCue) {
	eventCh := make(chan tcell.Event, 16)
	quitCh := make(chan struct{})
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-quitCh:
				return
			}
		}
	})

	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()

	reduced := *reducedFlag
	indicator := engine.ParseMode(*modeFlag) == engine.ModeIndicatorOnly
	prevTier := sched.Tier()

	for {
		select {
		case ev := <-eventCh:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				_, rows := screen.Size()
				source.resize(float64(rows))
				screen.Sync()
				sched.OnResize()

			case *tcell.EventKey:
				_, rows := screen.Size()
				page := float64(rows)
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
					close(quitCh)
					return
				case ev.Rune() == 'j' || ev.Key() == tcell.KeyDown:
					source.scrollBy(1)
					sched.OnScroll()
				case ev.Rune() == 'k' || ev.Key() == tcell.KeyUp:
					source.scrollBy(-1)
					sched.OnScroll()
				case ev.Rune() == 'd' || ev.Key() == tcell.KeyPgDn:
					source.scrollBy(page / 2)
					sched.OnScroll()
				case ev.Rune() == 'u' || ev.Key() == tcell.KeyPgUp:
					source.scrollBy(-page / 2)
					sched.OnScroll()
				case ev.Rune() == 'g':
					source.scrollTo(0)
					sched.OnScroll()
				case ev.Rune() == 'G':
					source.scrollToEnd()
					sched.OnScroll()
				case ev.Rune() == 'm':
					reduced = !reduced
					sched.SetReducedMotion(reduced)
				case ev.Rune() == 'i':
					indicator = !indicator
					if indicator {
						sched.SetMode(engine.ModeIndicatorOnly)
					} else {
						sched.SetMode(engine.ModeFull)
					}
					sched.OnScroll()
				}
			}

		case <-ticker.C:
			frame, ok := sink.Latest()
			if !ok {
				continue
			}
			if cue != nil && frame.Tier != prevTier {
				cue.play(frame.Tier)
			}
			prevTier = frame.Tier
			draw(screen, source, frame, sched.Stats())
		}
	}
}
