package config

import (
	"errors"
	"log"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ThemeConfig styles the rendered documents: preview accent color
// and font, and the table header fill on the printable document.
type ThemeConfig struct {
	PrimaryColor string `mapstructure:"primaryColor"`
	FontFamily   string `mapstructure:"fontFamily"`
}

func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		PrimaryColor: "#162239",
		FontFamily:   "Inter",
	}
}

var themeColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ThemeHolder hands out the current theme and hot-reloads it when
// the theme file changes on disk.
type ThemeHolder struct {
	current atomic.Value // holds ThemeConfig
}

func NewThemeHolder() (*ThemeHolder, error) {
	v := viper.New()

	v.SetConfigName("theme")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/quickinvoice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("QIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultThemeConfig()
		v.SetDefault("theme.primaryColor", defaults.PrimaryColor)
		v.SetDefault("theme.fontFamily", defaults.FontFamily)
	}

	var cfg ThemeConfig
	if err := v.UnmarshalKey("theme", &cfg); err != nil {
		return nil, err
	}
	if err := validateThemeConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ThemeHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ThemeConfig
		if err := v.UnmarshalKey("theme", &updated); err != nil {
			log.Printf("[theme-config] reload failed: %v", err)
			return
		}
		if err := validateThemeConfig(updated); err != nil {
			log.Printf("[theme-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[theme-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ThemeHolder) Get() ThemeConfig {
	return h.current.Load().(ThemeConfig)
}

func validateThemeConfig(cfg ThemeConfig) error {
	if cfg.PrimaryColor != "" && !themeColorPattern.MatchString(cfg.PrimaryColor) {
		return errors.New("theme.primaryColor must be a #rrggbb hex value")
	}
	return nil
}
