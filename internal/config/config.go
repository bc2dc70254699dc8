package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full engine configuration.
type Config struct {
	Environment string        `mapstructure:"environment"`
	LogLevel    string        `mapstructure:"log_level"`
	Server      ServerConfig  `mapstructure:"server"`
	Physics     PhysicsConfig `mapstructure:"physics"`
	Field       FieldConfig   `mapstructure:"field"`
	Engine      EngineConfig  `mapstructure:"engine"`
	// Balls maps a ball material name to its aerodynamic properties.
	Balls map[string]BallConfig `mapstructure:"balls"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// PhysicsConfig tunes the aerodynamic integrator.
type PhysicsConfig struct {
	// TimeStep in seconds; 0.01 for accuracy, 1/60 for frame-locked callers.
	TimeStep float64 `mapstructure:"time_step"`
	// MaxFlightSeconds is the integrator safety cutoff.
	MaxFlightSeconds float64 `mapstructure:"max_flight_seconds"`
	AirDensity       float64 `mapstructure:"air_density"`
}

// FieldConfig is the backyard field geometry used for the boundary and foul
// checks.
type FieldConfig struct {
	FenceDistanceM   float64 `mapstructure:"fence_distance_m"`
	FenceHeightM     float64 `mapstructure:"fence_height_m"`
	FoulLineDeg      float64 `mapstructure:"foul_line_deg"`
	ReleaseDistanceM float64 `mapstructure:"release_distance_m"`
	ReleaseHeightM   float64 `mapstructure:"release_height_m"`
}

// EngineConfig holds match-level engine options.
type EngineConfig struct {
	// Seed feeds the injected random source; a fixed seed reproduces exact
	// outputs.
	Seed int64 `mapstructure:"seed"`
	// SprayJitterDeg bounds natural spray variation; 0 disables it.
	SprayJitterDeg float64 `mapstructure:"spray_jitter_deg"`
	// BallMaterial selects the ball from the balls table.
	BallMaterial string `mapstructure:"ball_material"`
}

// BallConfig describes one ball material.
type BallConfig struct {
	MassKg            float64 `mapstructure:"mass_kg"`
	RadiusM           float64 `mapstructure:"radius_m"`
	DragCoefficient   float64 `mapstructure:"drag_coefficient"`
	MagnusCoefficient float64 `mapstructure:"magnus_coefficient"`
}

// CrossSectionM2 derives the frontal area from the radius.
func (b BallConfig) CrossSectionM2() float64 {
	return math.Pi * b.RadiusM * b.RadiusM
}

// Load reads configs/config.yaml, applies defaults and environment variable
// overrides, and validates the result.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file falls back to defaults and env vars.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the built-in configuration without touching the
// filesystem. Used by tests and embedded callers.
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Server:      ServerConfig{Port: 8080},
		Physics: PhysicsConfig{
			TimeStep:         0.01,
			MaxFlightSeconds: 10,
			AirDensity:       1.225,
		},
		Field: FieldConfig{
			FenceDistanceM:   60,
			FenceHeightM:     2.5,
			FoulLineDeg:      45,
			ReleaseDistanceM: 14,
			ReleaseHeightM:   1.7,
		},
		Engine: EngineConfig{
			Seed:           1,
			SprayJitterDeg: 2.0,
			BallMaterial:   "standard",
		},
		Balls: map[string]BallConfig{
			"standard": {MassKg: 0.145, RadiusM: 0.0366, DragCoefficient: 0.35, MagnusCoefficient: 0.00012},
			"rubber":   {MassKg: 0.120, RadiusM: 0.0360, DragCoefficient: 0.40, MagnusCoefficient: 0.00015},
			"safety":   {MassKg: 0.100, RadiusM: 0.0380, DragCoefficient: 0.45, MagnusCoefficient: 0.00010},
		},
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Physics.TimeStep <= 0 {
		return fmt.Errorf("physics.time_step must be positive, got %g", c.Physics.TimeStep)
	}
	if c.Physics.MaxFlightSeconds <= 0 {
		return fmt.Errorf("physics.max_flight_seconds must be positive, got %g", c.Physics.MaxFlightSeconds)
	}
	if c.Field.FenceDistanceM <= 0 {
		return fmt.Errorf("field.fence_distance_m must be positive, got %g", c.Field.FenceDistanceM)
	}
	if c.Field.FoulLineDeg <= 0 || c.Field.FoulLineDeg > 90 {
		return fmt.Errorf("field.foul_line_deg must be within (0,90], got %g", c.Field.FoulLineDeg)
	}
	if len(c.Balls) == 0 {
		return fmt.Errorf("at least one ball material must be configured")
	}
	for name, ball := range c.Balls {
		if ball.MassKg <= 0 || ball.RadiusM <= 0 {
			return fmt.Errorf("ball %q: mass and radius must be positive", name)
		}
	}
	if _, ok := c.Balls[c.Engine.BallMaterial]; !ok {
		return ErrUnknownBallMaterial{Material: c.Engine.BallMaterial}
	}
	return nil
}

func setDefaults() {
	def := Default()

	viper.SetDefault("environment", def.Environment)
	viper.SetDefault("log_level", def.LogLevel)

	viper.SetDefault("server.port", def.Server.Port)

	viper.SetDefault("physics.time_step", def.Physics.TimeStep)
	viper.SetDefault("physics.max_flight_seconds", def.Physics.MaxFlightSeconds)
	viper.SetDefault("physics.air_density", def.Physics.AirDensity)

	viper.SetDefault("field.fence_distance_m", def.Field.FenceDistanceM)
	viper.SetDefault("field.fence_height_m", def.Field.FenceHeightM)
	viper.SetDefault("field.foul_line_deg", def.Field.FoulLineDeg)
	viper.SetDefault("field.release_distance_m", def.Field.ReleaseDistanceM)
	viper.SetDefault("field.release_height_m", def.Field.ReleaseHeightM)

	viper.SetDefault("engine.seed", def.Engine.Seed)
	viper.SetDefault("engine.spray_jitter_deg", def.Engine.SprayJitterDeg)
	viper.SetDefault("engine.ball_material", def.Engine.BallMaterial)

	for name, ball := range def.Balls {
		viper.SetDefault("balls."+name+".mass_kg", ball.MassKg)
		viper.SetDefault("balls."+name+".radius_m", ball.RadiusM)
		viper.SetDefault("balls."+name+".drag_coefficient", ball.DragCoefficient)
		viper.SetDefault("balls."+name+".magnus_coefficient", ball.MagnusCoefficient)
	}
}
