package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oomph-ac/aimbench/session"
	"github.com/oomph-ac/aimbench/session/scheduler"
	"github.com/oomph-ac/aimbench/settings"
	"github.com/sirupsen/logrus"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

// The following program runs a benchmark session in a window. Click to capture the mouse and Escape to release it.
// R resets the statistics, F5 regenerates the scene, F2 exports the configuration and F9 reloads it from disk.
func main() {
	configPath := flag.String("config", "aimbench.toml", "path of the configuration document")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed of every random draw in the session")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if os.Getenv("AIMBENCH_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Warnf("unable to initialise sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	if _, err := os.Stat(*configPath); errors.Is(err, os.ErrNotExist) {
		if err := settings.SaveDefault(*configPath); err != nil {
			log.Fatalf("unable to write default configuration: %v", err)
		}
		log.Infof("default configuration written to %s", *configPath)
	}
	conf, err := settings.Load(*configPath)
	if err != nil {
		log.Fatalf("unable to load configuration: %v", err)
	}

	r, err := newRenderer(windowWidth, windowHeight)
	if err != nil {
		log.Fatal(err)
	}
	s, err := session.New(conf, r, rand.New(rand.NewSource(*seed)), log)
	if err != nil {
		log.Fatal(err)
	}
	s.SetAspect(float32(windowWidth) / windowHeight)

	b := &benchmark{session: s, renderer: r, configPath: *configPath, log: log}
	var sched scheduler.Scheduler
	if s.Config().Render.Pacing == settings.PacingTimer {
		if b.timer, err = scheduler.NewTimer(s.Config().Render.FrameRate, log); err != nil {
			log.Fatal(err)
		}
		sched = b.timer
	} else {
		b.engine = scheduler.NewEngine(log)
		sched = b.engine
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := sched.Run(ctx, s.Tick); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("scheduler stopped: %v", err)
		}
	}()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("aimbench")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(b); err != nil {
		log.Fatal(err)
	}
}
