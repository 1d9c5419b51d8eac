package main

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oomph-ac/aimbench/event"
	"github.com/oomph-ac/aimbench/session"
	"github.com/oomph-ac/aimbench/session/scheduler"
	"github.com/sirupsen/logrus"
)

var keys = map[ebiten.Key]event.Key{
	ebiten.KeyW:          event.KeyForward,
	ebiten.KeyArrowUp:    event.KeyForward,
	ebiten.KeyS:          event.KeyBackward,
	ebiten.KeyArrowDown:  event.KeyBackward,
	ebiten.KeyA:          event.KeyLeft,
	ebiten.KeyArrowLeft:  event.KeyLeft,
	ebiten.KeyD:          event.KeyRight,
	ebiten.KeyArrowRight: event.KeyRight,
	ebiten.KeySpace:      event.KeyJump,
}

var buttons = map[ebiten.MouseButton]event.Button{
	ebiten.MouseButtonLeft:   event.ButtonPrimary,
	ebiten.MouseButtonMiddle: event.ButtonAuxiliary,
	ebiten.MouseButtonRight:  event.ButtonSecondary,
}

// benchmark feeds ebiten input to a session and presents what it renders.
type benchmark struct {
	session  *session.Session
	renderer *renderer
	// engine is set with engine pacing, timer with timer pacing.
	engine *scheduler.Engine
	timer  *scheduler.Timer

	configPath       string
	cursorX, cursorY int

	log *logrus.Logger
}

func (b *benchmark) Update() error {
	b.handleCommands()

	if !b.session.Captured() {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
			b.cursorX, b.cursorY = ebiten.CursorPosition()
			b.session.SetCapture(true)
		}
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.CursorMode() != ebiten.CursorModeCaptured {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		b.session.SetCapture(false)
		return nil
	}

	x, y := ebiten.CursorPosition()
	if dx, dy := x-b.cursorX, y-b.cursorY; dx != 0 || dy != 0 {
		b.session.PointerMove(float32(dx), float32(dy))
	}
	b.cursorX, b.cursorY = x, y

	for mb, button := range buttons {
		if inpututil.IsMouseButtonJustPressed(mb) {
			b.session.PointerButton(button, true)
		} else if inpututil.IsMouseButtonJustReleased(mb) {
			b.session.PointerButton(button, false)
		}
	}
	for k, key := range keys {
		if inpututil.IsKeyJustPressed(k) {
			b.session.Key(key, true)
		} else if inpututil.IsKeyJustReleased(k) {
			b.session.Key(key, false)
		}
	}
	return nil
}

// handleCommands handles the keys that act on the session rather than the player.
func (b *benchmark) handleCommands() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		b.session.ResetStats()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		b.session.Regenerate()
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		res := b.session.ExportFile(b.configPath)
		go func() {
			if err := <-res; err != nil {
				b.log.Errorf("unable to export configuration: %v", err)
				return
			}
			b.log.Infof("configuration exported to %s", b.configPath)
		}()
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		b.reload()
	}
}

// reload replaces the live configuration with the document on disk.
func (b *benchmark) reload() {
	data, err := os.ReadFile(b.configPath)
	if err != nil {
		b.log.Errorf("unable to read configuration: %v", err)
		return
	}
	if err := b.session.Configure(data); err != nil {
		return
	}
	if b.timer != nil {
		if err := b.timer.SetFrameRate(b.session.Config().Render.FrameRate); err != nil {
			b.log.Warnf("frame rate not applied: %v", err)
		}
	}
}

func (b *benchmark) Draw(screen *ebiten.Image) {
	if b.engine != nil {
		b.engine.Frame(time.Now())
	}
	b.renderer.draw(screen)
}

func (b *benchmark) Layout(outsideWidth, outsideHeight int) (int, int) {
	b.renderer.resize(outsideWidth, outsideHeight)
	b.session.SetAspect(float32(outsideWidth) / float32(outsideHeight))
	return outsideWidth, outsideHeight
}
