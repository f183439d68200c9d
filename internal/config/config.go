package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tracker.db"
	DefaultStateDir       = "state"
	DefaultStateKey       = "transitionTrackerState"
	DefaultPrintPath      = "checklist.txt"
	DefaultNotifySeconds  = 3

	BackendSQLite = "sqlite"
	BackendFile   = "file"

	appDirName = "tracker"
)

type Keymap struct {
	Quit        string `toml:"quit"`
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	NextSection string `toml:"next_section"`
	PrevSection string `toml:"prev_section"`
	Toggle      string `toml:"toggle"`
	Reset       string `toml:"reset"`
	Print       string `toml:"print"`
	Confirm     string `toml:"confirm"`
	Cancel      string `toml:"cancel"`
}

type Config struct {
	Backend       string `toml:"backend"`
	DBPath        string `toml:"db_path"`
	StateDir      string `toml:"state_dir"`
	StateKey      string `toml:"state_key"`
	ChecklistPath string `toml:"checklist_path"`
	PrintPath     string `toml:"print_path"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	NotifySeconds int    `toml:"notify_seconds"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config location, or the working
// directory file when no user config dir is available.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist yet. Relative data paths are resolved against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile:
	default:
		return errors.New("backend must be \"sqlite\" or \"file\"")
	}
	if c.NotifySeconds < 0 {
		return errors.New("notify_seconds must not be negative")
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := defaultConfig()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StateDir == "" {
		c.StateDir = def.StateDir
	}
	if c.StateKey == "" {
		c.StateKey = def.StateKey
	}
	if c.PrintPath == "" {
		c.PrintPath = def.PrintPath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.NotifySeconds == 0 {
		c.NotifySeconds = def.NotifySeconds
	}
	k := &c.Keys
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&k.Quit, def.Keys.Quit)
	fill(&k.Up, def.Keys.Up)
	fill(&k.Down, def.Keys.Down)
	fill(&k.NextSection, def.Keys.NextSection)
	fill(&k.PrevSection, def.Keys.PrevSection)
	fill(&k.Toggle, def.Keys.Toggle)
	fill(&k.Reset, def.Keys.Reset)
	fill(&k.Print, def.Keys.Print)
	fill(&k.Confirm, def.Keys.Confirm)
	fill(&k.Cancel, def.Keys.Cancel)
}

func (c Config) resolve(base string) Config {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "file:") {
			return p
		}
		return filepath.Join(base, p)
	}
	c.DBPath = abs(c.DBPath)
	c.StateDir = abs(c.StateDir)
	c.ChecklistPath = abs(c.ChecklistPath)
	c.LogPath = abs(c.LogPath)
	return c
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Backend:       BackendSQLite,
		DBPath:        DefaultDBName,
		StateDir:      DefaultStateDir,
		StateKey:      DefaultStateKey,
		PrintPath:     DefaultPrintPath,
		LogPath:       "tracker.log",
		LogLevel:      "info",
		NotifySeconds: DefaultNotifySeconds,
		Keys: Keymap{
			Quit:        "q",
			Up:          "k",
			Down:        "j",
			NextSection: "tab",
			PrevSection: "shift+tab",
			Toggle:      " ",
			Reset:       "r",
			Print:       "p",
			Confirm:     "y",
			Cancel:      "n",
		},
	}
}
