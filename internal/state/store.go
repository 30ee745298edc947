package state

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"sitewiz/internal/domain"
)

const (
	ConfigDirName    = ".config/sitewiz"
	SettingsFileName = "config.yaml"
	EnvPrefix        = "SITEWIZ"
)

const (
	NotifyBackendStdout    = "stdout"
	NotifyBackendOSAScript = "osascript"
	NotifyBackendNone      = "none"

	OutputText = "text"
	OutputYAML = "yaml"
	OutputNone = "none"
)

type Paths struct {
	Home string
}

func NewPaths(home string) Paths {
	return Paths{Home: home}
}

func (p Paths) ConfigRoot() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "sitewiz")
	}
	return filepath.Join(p.Home, ConfigDirName)
}

func (p Paths) SettingsPath() string {
	return filepath.Join(p.ConfigRoot(), SettingsFileName)
}

type Settings struct {
	NotifyBackend string `mapstructure:"notify_backend" yaml:"notify_backend"`
	Output        string `mapstructure:"output" yaml:"output"`
	AltScreen     bool   `mapstructure:"alt_screen" yaml:"alt_screen"`
	Accessible    bool   `mapstructure:"accessible" yaml:"accessible"`
	Verbosity     int    `mapstructure:"verbosity" yaml:"verbosity"`
}

func DefaultSettings() Settings {
	return Settings{
		NotifyBackend: NotifyBackendStdout,
		Output:        OutputText,
		AltScreen:     true,
		Accessible:    false,
		Verbosity:     0,
	}
}

type LoadOptions struct {
	// ConfigFile overrides the settings path under the config root.
	ConfigFile string
	// Flags, when set, take precedence over env and file values. Only flags
	// that were changed on the command line count.
	Flags *pflag.FlagSet
}

// settingsFlags maps settings keys to the CLI flags that may override them.
var settingsFlags = map[string]string{
	"notify_backend": "notify",
	"output":         "output",
	"alt_screen":     "alt-screen",
	"accessible":     "accessible",
}

// LoadSettings resolves settings with precedence flags > SITEWIZ_* env >
// settings file > defaults. A missing default settings file is not an error;
// a missing explicit one is.
func LoadSettings(paths Paths, opts LoadOptions) (Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := DefaultSettings()
	v.SetDefault("notify_backend", def.NotifyBackend)
	v.SetDefault("output", def.Output)
	v.SetDefault("alt_screen", def.AltScreen)
	v.SetDefault("accessible", def.Accessible)
	v.SetDefault("verbosity", def.Verbosity)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"notify_backend", "output", "alt_screen", "accessible", "verbosity"} {
		if err := v.BindEnv(key); err != nil {
			return Settings{}, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		path = paths.SettingsPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}

	if opts.Flags != nil {
		for key, name := range settingsFlags {
			flag := opts.Flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Settings{}, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	s.NotifyBackend = strings.ToLower(strings.TrimSpace(s.NotifyBackend))
	s.Output = strings.ToLower(strings.TrimSpace(s.Output))
	if err := ValidateSettings(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func ValidateSettings(s Settings) error {
	switch s.NotifyBackend {
	case NotifyBackendStdout, NotifyBackendOSAScript, NotifyBackendNone:
	default:
		return fmt.Errorf("invalid notify backend %q (supported: %s, %s, %s)", s.NotifyBackend, NotifyBackendStdout, NotifyBackendOSAScript, NotifyBackendNone)
	}
	switch s.Output {
	case OutputText, OutputYAML, OutputNone:
	default:
		return fmt.Errorf("invalid output format %q (supported: %s, %s, %s)", s.Output, OutputText, OutputYAML, OutputNone)
	}
	if s.Verbosity < 0 {
		return fmt.Errorf("verbosity must be >= 0, got %d", s.Verbosity)
	}
	return nil
}

// LoadAnswers reads a YAML answers file into form values. Unknown keys are
// rejected so typos surface instead of silently leaving a step empty.
func LoadAnswers(path string) (domain.FormValues, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.FormValues{}, err
	}
	v, err := DecodeAnswers(b)
	if err != nil {
		return domain.FormValues{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

func DecodeAnswers(b []byte) (domain.FormValues, error) {
	var v domain.FormValues
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return domain.FormValues{}, err
	}
	v.KeyFeatures = domain.DedupeFeatures(v.KeyFeatures)
	return v, nil
}

// MarshalAnswers renders values in the answers-file format, so output can be
// fed back with --answers.
func MarshalAnswers(v domain.FormValues) ([]byte, error) {
	out := v.Clone()
	if out.KeyFeatures == nil {
		out.KeyFeatures = []string{}
	}
	return yaml.Marshal(out)
}
