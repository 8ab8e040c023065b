package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/andrewmao33/polybot/internal/domain"
	"github.com/andrewmao33/polybot/internal/strategy"
)

// Config es la configuración completa del maker.
type Config struct {
	Maker   MakerConfig   `yaml:"maker"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// MakerConfig controla la estrategia de quoting.
type MakerConfig struct {
	Duration           string `yaml:"duration"`            // 5m | 15m
	MarginTicks        int    `yaml:"margin_ticks"`        // colchón bajo 1000 - ask contrario
	MaxPosition        int64  `yaml:"max_position"`        // shares máximos por lado
	MinOrderSize       int64  `yaml:"min_order_size"`      // shortfalls menores no se repostean
	LadderRungs        int    `yaml:"ladder_rungs"`
	RungSpacingTicks   int    `yaml:"rung_spacing_ticks"`
	LadderFloorTicks   int    `yaml:"ladder_floor_ticks"`
	RebalanceThreshold int64  `yaml:"rebalance_threshold"` // imbalance que dispara el take
	MaxTakeSize        int64  `yaml:"max_take_size"`
	TakeCeilingTicks   int    `yaml:"take_ceiling_ticks"`  // no se toma liquidez por encima
	EventBuffer        int    `yaml:"event_buffer"`        // tamaño del canal de eventos

	// Experimentales, apagados con cero (sus coeficientes siguen en discusión).
	SkewGamma       float64 `yaml:"skew_gamma"`        // baja el bid del lado pesado
	CrashFloorTicks int     `yaml:"crash_floor_ticks"` // no quotar lados desplomándose
}

// APIConfig contiene los endpoints externos.
type APIConfig struct {
	GammaBase    string `yaml:"gamma_base"`
	MarketWSURL  string `yaml:"market_ws_url"`
	BinanceWSURL string `yaml:"binance_ws_url"`
}

// StorageConfig controla dónde se persiste el journal.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Strategy traduce la sección maker a la configuración de estrategia.
// Los campos que el YAML dejó en cero ya recibieron defaults en Load.
func (c *Config) Strategy() strategy.Config {
	s := strategy.DefaultConfig()
	s.MarginTicks = domain.Ticks(c.Maker.MarginTicks)
	s.MaxPosition = decimal.NewFromInt(c.Maker.MaxPosition)
	s.MinOrderSize = decimal.NewFromInt(c.Maker.MinOrderSize)
	s.LadderRungs = c.Maker.LadderRungs
	s.RungSpacing = domain.Ticks(c.Maker.RungSpacingTicks)
	s.LadderFloor = domain.Ticks(c.Maker.LadderFloorTicks)
	s.RebalanceThreshold = decimal.NewFromInt(c.Maker.RebalanceThreshold)
	s.MaxTakeSize = decimal.NewFromInt(c.Maker.MaxTakeSize)
	s.TakePriceCeiling = domain.Ticks(c.Maker.TakeCeilingTicks)
	if c.Maker.Duration == "15m" {
		s.Duration = domain.Duration15m
	}
	if c.Maker.SkewGamma > 0 {
		s.SkewGamma = decimal.NewFromFloat(c.Maker.SkewGamma)
	}
	if c.Maker.CrashFloorTicks > 0 {
		s.CrashFloor = domain.Ticks(c.Maker.CrashFloorTicks)
	}
	return s
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MAKER_DURATION"); v != "" {
		cfg.Maker.Duration = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Los defaults de estrategia son los de strategy.DefaultConfig.
func setDefaults(cfg *Config) {
	if cfg.Maker.Duration == "" {
		cfg.Maker.Duration = "5m"
	}
	if cfg.Maker.MarginTicks <= 0 {
		cfg.Maker.MarginTicks = 5
	}
	if cfg.Maker.MaxPosition <= 0 {
		cfg.Maker.MaxPosition = 150
	}
	if cfg.Maker.MinOrderSize <= 0 {
		cfg.Maker.MinOrderSize = 5
	}
	if cfg.Maker.LadderRungs <= 0 {
		cfg.Maker.LadderRungs = 3
	}
	if cfg.Maker.RungSpacingTicks <= 0 {
		cfg.Maker.RungSpacingTicks = 10
	}
	if cfg.Maker.LadderFloorTicks <= 0 {
		cfg.Maker.LadderFloorTicks = 100
	}
	if cfg.Maker.RebalanceThreshold <= 0 {
		cfg.Maker.RebalanceThreshold = 30
	}
	if cfg.Maker.MaxTakeSize <= 0 {
		cfg.Maker.MaxTakeSize = 12
	}
	if cfg.Maker.TakeCeilingTicks <= 0 {
		cfg.Maker.TakeCeilingTicks = 600
	}
	if cfg.Maker.EventBuffer <= 0 {
		cfg.Maker.EventBuffer = 1024
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "polybot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// validate rechaza combinaciones sin sentido antes de arrancar.
func validate(cfg *Config) error {
	if cfg.Maker.Duration != "5m" && cfg.Maker.Duration != "15m" {
		return fmt.Errorf("duration %q inválida (5m | 15m)", cfg.Maker.Duration)
	}
	if cfg.Maker.MarginTicks >= 1000 {
		return fmt.Errorf("margin_ticks %d fuera de rango", cfg.Maker.MarginTicks)
	}
	if cfg.Maker.TakeCeilingTicks > 1000 {
		return fmt.Errorf("take_ceiling_ticks %d fuera de rango", cfg.Maker.TakeCeilingTicks)
	}
	return nil
}
