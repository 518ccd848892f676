package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ListingConfig holds the tunables of the listing engine.
type ListingConfig struct {
	// SlugMaxAttempts bounds the create retry loop when concurrent
	// creations race on the same slug.
	SlugMaxAttempts int `mapstructure:"slugMaxAttempts"`

	DefaultPageSize int `mapstructure:"defaultPageSize"`
	MaxPageSize     int `mapstructure:"maxPageSize"`
}

func DefaultListingConfig() ListingConfig {
	return ListingConfig{
		SlugMaxAttempts: 5,
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

// ListingConfigHolder serves the current listing config and hot-reloads it
// when the backing file changes.
type ListingConfigHolder struct {
	current atomic.Value // holds ListingConfig
}

func NewListingConfigHolder() (*ListingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("listing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/domora/config") // Volume-mounted config
	v.AddConfigPath("/etc/domora")            // System config
	v.AddConfigPath(".")                      // Current directory (dev mode)

	v.SetEnvPrefix("DOMORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultListingConfig()
	v.SetDefault("listing.slugMaxAttempts", defaults.SlugMaxAttempts)
	v.SetDefault("listing.defaultPageSize", defaults.DefaultPageSize)
	v.SetDefault("listing.maxPageSize", defaults.MaxPageSize)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ListingConfig
	if err := v.UnmarshalKey("listing", &cfg); err != nil {
		return nil, err
	}
	if err := validateListingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ListingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ListingConfig
		if err := v.UnmarshalKey("listing", &updated); err != nil {
			log.Printf("[listing-config] reload failed: %v", err)
			return
		}
		if err := validateListingConfig(updated); err != nil {
			log.Printf("[listing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[listing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticListingConfig wraps a fixed config, bypassing file discovery.
func NewStaticListingConfig(cfg ListingConfig) *ListingConfigHolder {
	holder := &ListingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ListingConfigHolder) Get() ListingConfig {
	return h.current.Load().(ListingConfig)
}

func validateListingConfig(cfg ListingConfig) error {
	if cfg.SlugMaxAttempts < 1 {
		return errors.New("listing.slugMaxAttempts must be at least 1")
	}
	if cfg.DefaultPageSize < 1 {
		return errors.New("listing.defaultPageSize must be at least 1")
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return errors.New("listing.maxPageSize cannot be below listing.defaultPageSize")
	}
	return nil
}
