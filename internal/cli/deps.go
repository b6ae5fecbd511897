package cli

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"weather-history/config"
	"weather-history/internal/repositories"
	"weather-history/internal/services/history"
	"weather-history/internal/services/location"
	"weather-history/internal/services/weather"
	"weather-history/internal/storage"
	"weather-history/pkg/logger"
	"weather-history/pkg/observe"
)

// deps is the wired application shared by every command.
type deps struct {
	cfg     *config.Config
	l       *logger.Logger
	hook    *observe.SentryHook
	store   *storage.SQLStore
	history *history.Service
}

func buildDeps(ctx context.Context, configPath string, logOut io.Writer) (*deps, error) {
	cnf, err := config.NewConfigWithProvider(config.NewFileConfigProvider(configPath))
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	writers := []io.Writer{logOut}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.Sentry.Debug, cnf.Sentry.DSN)
		writers = append(writers, hook)
	}

	l := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
	}, writers...)
	if hook != nil {
		hook.SetLogger(l)
	}

	store, err := storage.Open(ctx, cnf.Storage.Driver, cnf.Storage.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s storage", cnf.Storage.Driver)
	}

	forecast, archive := repositories.InitWeatherRepositories(cnf, l)
	weatherService := weather.NewWeatherService(forecast, archive, l,
		weather.WithBoundary(cnf.Weather.RangeBoundary),
	)
	resolver := location.NewDefaultResolver(l, repositories.InitGeocoders(cnf, l)...)

	return &deps{
		cfg:     cnf,
		l:       l,
		hook:    hook,
		store:   store,
		history: history.NewService(store, resolver, weatherService, cnf.Weather.MaxRangeDays, l),
	}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.l.Error(err, map[string]any{"stage": "close storage"})
	}
	_ = d.l.Stop()
	if d.hook != nil {
		d.hook.Flush()
	}
}
