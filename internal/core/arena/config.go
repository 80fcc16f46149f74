package arena

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/lightcycle/internal/core/cycle"
	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/systems/physics"
	"github.com/zeusync/lightcycle/internal/core/walls"
)

type Config struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	// Dt is the fixed tick length in seconds.
	Dt float64 `yaml:"dt"`
	// EscapeTolerance is how far past the rim a cycle may be found before it is
	// killed instead of clamped.
	EscapeTolerance float64 `yaml:"escape_tolerance"`

	Walls  walls.Options `yaml:"walls"`
	Cycle  cycle.Config  `yaml:"cycle"`
	Spawns []SpawnConfig `yaml:"spawns"`
	Log    log.Config    `yaml:"log"`
}

type SpawnConfig struct {
	Name    string         `yaml:"name"`
	X       float64        `yaml:"x"`
	Y       float64        `yaml:"y"`
	Heading string         `yaml:"heading"` // east | north | west | south
	Script  []ScriptedTurn `yaml:"script,omitempty"`
}

// ScriptedTurn is a turn request issued on behalf of a cycle once the arena
// clock reaches At.
type ScriptedTurn struct {
	At   float64    `yaml:"at"`
	Turn cycle.Turn `yaml:"turn"`
}

func DefaultConfig() Config {
	return Config{
		HalfWidth:       5000,
		HalfHeight:      5000,
		Dt:              0.01,
		EscapeTolerance: 100,
		Walls:           walls.DefaultOptions(),
		Cycle:           cycle.DefaultConfig(),
		Spawns: []SpawnConfig{
			{Name: "alpha", X: -1000, Y: 0, Heading: "east"},
			{Name: "beta", X: 1000, Y: 0, Heading: "west"},
		},
		Log: log.DefaultConfig(),
	}
}

func (c Config) Validate() error {
	switch {
	case !(c.HalfWidth > 0) || !(c.HalfHeight > 0) || math.IsInf(c.HalfWidth, 0) || math.IsInf(c.HalfHeight, 0):
		return fmt.Errorf("%w: arena extents must be positive and finite", ErrInvalidConfig)
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive", ErrInvalidConfig)
	case c.EscapeTolerance < 0:
		return fmt.Errorf("%w: escape_tolerance must not be negative", ErrInvalidConfig)
	}
	if err := c.Walls.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.CycleConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	names := make(map[string]struct{}, len(c.Spawns))
	for i, s := range c.Spawns {
		if err := c.validateSpawn(s); err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("%w: spawn %d: %w %q", ErrInvalidConfig, i, ErrDuplicateName, s.Name)
		}
		names[s.Name] = struct{}{}
	}
	return nil
}

func (c Config) validateSpawn(s SpawnConfig) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: spawn name is empty", ErrInvalidConfig)
	}
	if math.Abs(s.X) >= c.HalfWidth || math.Abs(s.Y) >= c.HalfHeight {
		return fmt.Errorf("%w: spawn %q lies outside the arena", ErrInvalidConfig, s.Name)
	}
	if _, err := ParseHeading(s.Heading); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, st := range s.Script {
		if st.At < 0 || !st.Turn.Valid() {
			return fmt.Errorf("%w: spawn %q has an invalid scripted turn", ErrInvalidConfig, s.Name)
		}
	}
	return nil
}

// CycleConfig is the per-cycle config with the arena bounds applied.
func (c Config) CycleConfig() cycle.Config {
	cfg := c.Cycle
	cfg.Bounds = cycle.Bounds{
		HalfWidth:       c.HalfWidth,
		HalfHeight:      c.HalfHeight,
		EscapeTolerance: c.EscapeTolerance,
	}
	return cfg
}

// Spawn converts the spawn record into cycle coordinates.
func (s SpawnConfig) Spawn() (cycle.Spawn, error) {
	heading, err := ParseHeading(s.Heading)
	if err != nil {
		return cycle.Spawn{}, err
	}
	return cycle.Spawn{Position: physics.V(s.X, s.Y), Heading: heading}, nil
}

// ParseHeading maps a compass name onto a unit vector. Empty means east.
func ParseHeading(name string) (physics.Vec2, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "east", "e", "+x":
		return physics.V(1, 0), nil
	case "north", "n", "+y":
		return physics.V(0, 1), nil
	case "west", "w", "-x":
		return physics.V(-1, 0), nil
	case "south", "s", "-y":
		return physics.V(0, -1), nil
	default:
		return physics.Zero, fmt.Errorf("unknown heading %q", name)
	}
}

// LoadYAML decodes a config on top of DefaultConfig and validates it.
func LoadYAML(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode arena config: %w", err)
	}
	for i := range cfg.Spawns {
		script := cfg.Spawns[i].Script
		sort.SliceStable(script, func(a, b int) bool { return script[a].At < script[b].At })
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open arena config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// WriteYAML encodes cfg the way LoadYAML reads it.
func WriteYAML(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode arena config: %w", err)
	}
	return enc.Close()
}
