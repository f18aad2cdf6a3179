package cli

import (
	"log/slog"

	"github.com/smartchef/skillet/internal/config"
	"github.com/smartchef/skillet/pkg/adapters/openai"
	redisstore "github.com/smartchef/skillet/pkg/adapters/redis"
	"github.com/smartchef/skillet/pkg/ports"
	"github.com/smartchef/skillet/pkg/recipe"
)

// deps holds the collaborators assembled from configuration.
type deps struct {
	completer ports.Completer
	favorites ports.FavoriteStore
	cleanup   func()
}

// buildDeps wires the completion client and, when configured, the durable
// favorites book. The returned cleanup releases owned connections.
func buildDeps(cfg config.Config, logger *slog.Logger) deps {
	var completer ports.Completer = openai.New(cfg.Provider.Endpoint, cfg.Provider.APIKey(), clientOptions(cfg)...)

	d := deps{
		completer: completer,
		cleanup:   func() {},
	}

	if cfg.Redis.Addr != "" {
		storeOpts := []redisstore.Option{}
		if cfg.Redis.Prefix != "" {
			storeOpts = append(storeOpts, redisstore.WithPrefix(cfg.Redis.Prefix))
		}
		store := redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, storeOpts...)
		d.favorites = store
		d.cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing favorites store", "err", err)
			}
		}
	}

	return d
}

func clientOptions(cfg config.Config) []openai.Option {
	var opts []openai.Option
	if d := cfg.Provider.TimeoutDuration(); d > 0 {
		opts = append(opts, openai.WithTimeout(d))
	}
	return opts
}

// stepOptions maps provider configuration to workflow step options.
func stepOptions(cfg config.Config, logger *slog.Logger) []recipe.StepsOption {
	opts := []recipe.StepsOption{recipe.WithLogger(logger)}
	if cfg.Provider.Model != "" {
		opts = append(opts, recipe.WithModel(cfg.Provider.Model))
	}
	if cfg.Provider.Temperature != nil {
		opts = append(opts, recipe.WithTemperature(*cfg.Provider.Temperature))
	}
	return opts
}
