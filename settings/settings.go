package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/internal"
	"github.com/oomph-ac/aimbench/oerror"
	"github.com/pelletier/go-toml"
	"github.com/zeebo/xxh3"
)

const (
	PacingEngine = "engine"
	PacingTimer  = "timer"

	ClickToPhotonImmediate = "immediate"
	ClickToPhotonDelayed   = "delayed"
)

// Config is the configuration document of a benchmark session. It is loaded at startup and may be replaced wholesale
// at runtime.
type Config struct {
	Render  Render  `toml:"render"`
	Scene   Scene   `toml:"scene"`
	Player  Player  `toml:"player"`
	Reticle Reticle `toml:"reticle"`
	Targets Targets `toml:"targets"`
	Weapon  Weapon  `toml:"weapon"`
}

// Render holds pacing, latency and presentation settings.
type Render struct {
	// Pacing is either "engine" (one tick per vsync callback) or "timer" (self-rescheduled ticks, render throttled
	// to FrameRate).
	Pacing string `toml:"pacing"`
	// FrameRate is the target render rate in Hz, used by timer pacing only.
	FrameRate float64 `toml:"frameRate"`
	// FrameDelay is the number of ticks by which input is delayed before reaching the simulation.
	FrameDelay int     `toml:"frameDelay"`
	HFoV       float64 `toml:"hFoV"`
	LateWarp   bool    `toml:"lateWarp"`
	ShowBanner bool    `toml:"showBanner"`

	C2P ClickToPhoton `toml:"c2p"`
}

// ClickToPhoton configures the latency indicator drawn at the left edge of the screen.
type ClickToPhoton struct {
	Show bool `toml:"show"`
	// Mode is "immediate" to follow the raw button, or "delayed" to follow delivered fire events.
	Mode      string  `toml:"mode"`
	VertPos   float64 `toml:"vertPos"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	UpColor   string  `toml:"upColor"`
	DownColor string  `toml:"downColor"`
}

// Scene holds the world geometry settings.
type Scene struct {
	Width      float64 `toml:"width"`
	Depth      float64 `toml:"depth"`
	FloorColor string  `toml:"floorColor"`
	SkyColor   string  `toml:"skyColor"`

	Walls struct {
		Color  string  `toml:"color"`
		Height float64 `toml:"height"`
	} `toml:"walls"`

	Boxes struct {
		Count               int     `toml:"count"`
		MinHeight           float64 `toml:"minHeight"`
		MaxHeight           float64 `toml:"maxHeight"`
		Width               float64 `toml:"width"`
		Depth               float64 `toml:"depth"`
		DistanceRange       float64 `toml:"distanceRange"`
		MinDistanceToPlayer float64 `toml:"minDistanceToPlayer"`
		Color               string  `toml:"color"`
		ColorScaleRange     float64 `toml:"colorScaleRange"`
	} `toml:"boxes"`
}

// Player holds the first-person controller settings.
type Player struct {
	Speed              float64 `toml:"speed"`
	MouseSensitivity   float64 `toml:"mouseSensitivity"`
	Height             float64 `toml:"height"`
	JumpHeight         float64 `toml:"jumpHeight"`
	CollisionDetection bool    `toml:"collisionDetection"`
	CollisionDistance  float64 `toml:"collisionDistance"`
}

// Reticle holds the crosshair geometry.
type Reticle struct {
	Color         string  `toml:"color"`
	Size          float64 `toml:"size"`
	Gap           float64 `toml:"gap"`
	Thickness     float64 `toml:"thickness"`
	ExpandedScale float64 `toml:"expandedScale"`
	ShrinkTime    float64 `toml:"shrinkTime"`
}

// Targets holds the moving target settings.
type Targets struct {
	Count           int     `toml:"count"`
	MinSize         float64 `toml:"minSize"`
	MaxSize         float64 `toml:"maxSize"`
	MinSpeed        float64 `toml:"minSpeed"`
	MaxSpeed        float64 `toml:"maxSpeed"`
	MinChangeTime   float64 `toml:"minChangeTime"`
	MaxChangeTime   float64 `toml:"maxChangeTime"`
	FullHealthColor string  `toml:"fullHealthColor"`
	MinHealthColor  string  `toml:"minHealthColor"`

	MinSpawnDistance  float64 `toml:"minSpawnDistance"`
	MaxSpawnDistance  float64 `toml:"maxSpawnDistance"`
	SpawnAzimRangeDeg float64 `toml:"spawnAzimRangeDeg"`
	SpawnElevRangeDeg float64 `toml:"spawnElevRangeDeg"`

	CollisionDetection bool    `toml:"collisionDetection"`
	CollisionDistance  float64 `toml:"collisionDistance"`
	// KeepInClearing bounds targets to the box-free clearing around the spawn point instead of the scene.
	KeepInClearing bool `toml:"keepInClearing"`

	Reference struct {
		Size     float64 `toml:"size"`
		Distance float64 `toml:"distance"`
	} `toml:"reference"`

	Particles struct {
		Size         float64 `toml:"size"`
		HitCount     int     `toml:"hitCount"`
		DestroyCount int     `toml:"destroyCount"`
	} `toml:"particles"`
}

// Weapon holds the fire settings.
type Weapon struct {
	Auto            bool    `toml:"auto"`
	FirePeriod      float64 `toml:"firePeriod"`
	DamagePerSecond float64 `toml:"damagePerSecond"`
	Scoped          bool    `toml:"scoped"`
	ToggleScope     bool    `toml:"toggleScope"`
	ScopeFov        float64 `toml:"scopeFov"`
	FireSpread      float64 `toml:"fireSpread"`
}

// DamagePerShot returns the health removed from a target by a single shot.
func (w Weapon) DamagePerShot() float64 {
	return w.DamagePerSecond * w.FirePeriod
}

// Default returns the default configuration document.
func Default() Config {
	var c Config
	c.Render = Render{
		Pacing:     PacingEngine,
		FrameRate:  60,
		FrameDelay: 0,
		HFoV:       103,
		LateWarp:   false,
		ShowBanner: true,
		C2P: ClickToPhoton{
			Show:      false,
			Mode:      ClickToPhotonImmediate,
			VertPos:   0.5,
			Width:     0.2,
			Height:    0.2,
			UpColor:   "#222222",
			DownColor: "#aaaaaa",
		},
	}

	c.Scene.Width, c.Scene.Depth = 1000, 1000
	c.Scene.FloorColor = "#756b5a"
	c.Scene.SkyColor = "#c6defa"
	c.Scene.Walls.Color = "#2a2713"
	c.Scene.Walls.Height = 80
	c.Scene.Boxes.Count = 200
	c.Scene.Boxes.MinHeight = 20
	c.Scene.Boxes.MaxHeight = 100
	c.Scene.Boxes.Width = 20
	c.Scene.Boxes.Depth = 20
	c.Scene.Boxes.DistanceRange = 500
	c.Scene.Boxes.MinDistanceToPlayer = 80
	c.Scene.Boxes.Color = "#ffffff"
	c.Scene.Boxes.ColorScaleRange = 0.5

	c.Player = Player{
		Speed:              500,
		MouseSensitivity:   0.2,
		Height:             5,
		JumpHeight:         250,
		CollisionDetection: true,
		CollisionDistance:  3,
	}

	c.Reticle = Reticle{
		Color:         "#000000",
		Size:          0.03,
		Gap:           0.01,
		Thickness:     0.15,
		ExpandedScale: 2,
		ShrinkTime:    0.3,
	}

	c.Targets = Targets{
		Count:              1,
		MinSize:            0.5,
		MaxSize:            3,
		MinSpeed:           5,
		MaxSpeed:           15,
		MinChangeTime:      1,
		MaxChangeTime:      3,
		FullHealthColor:    "#00ff00",
		MinHealthColor:     "#ff0000",
		MinSpawnDistance:   20,
		MaxSpawnDistance:   30,
		SpawnAzimRangeDeg:  35,
		SpawnElevRangeDeg:  10,
		CollisionDetection: true,
		CollisionDistance:  3,
		KeepInClearing:     true,
	}
	c.Targets.Reference.Size = 1
	c.Targets.Reference.Distance = 30
	c.Targets.Particles.Size = 0.4
	c.Targets.Particles.HitCount = 25
	c.Targets.Particles.DestroyCount = 1000

	c.Weapon = Weapon{
		Auto:            false,
		FirePeriod:      0.1,
		DamagePerSecond: 10,
		Scoped:          false,
		ToggleScope:     true,
		ScopeFov:        50,
		FireSpread:      0.5,
	}
	return c
}

// Export encodes the configuration document. Exporting and importing the result yields an identical document.
func Export(c Config) ([]byte, error) {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	enc := toml.NewEncoder(buf).Order(toml.OrderPreserve)
	if err := enc.Encode(c); err != nil {
		return nil, oerror.New(game.ErrorEncodeConfig, err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

// Import decodes a configuration document. Fields missing from data keep their default value, and the result is
// normalised.
func Import(data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, oerror.New(game.ErrorDecodeConfig, err)
	}
	c.Normalize()
	return c, nil
}

// Fingerprint returns a hash of the encoded document, used to detect whether an import changed anything.
func Fingerprint(c Config) (uint64, error) {
	data, err := Export(c)
	if err != nil {
		return 0, err
	}
	return xxh3.Hash(data), nil
}

// Save writes the configuration document to path.
func Save(path string, c Config) error {
	data, err := Export(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing settings file: %w", err)
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return errors.New("settings file already exists")
	}
	return Save(path, Default())
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.New("settings file doesn't exist")
	} else if err != nil {
		return Config{}, fmt.Errorf("error reading config: %w", err)
	}
	return Import(data)
}
