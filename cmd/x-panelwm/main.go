package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/internal/api"
	"github.com/ItsNotGoodName/x-panelwm/internal/build"
	"github.com/ItsNotGoodName/x-panelwm/internal/bus"
	"github.com/ItsNotGoodName/x-panelwm/internal/config"
	"github.com/ItsNotGoodName/x-panelwm/internal/content"
	"github.com/ItsNotGoodName/x-panelwm/internal/core"
	"github.com/ItsNotGoodName/x-panelwm/internal/headless"
	"github.com/ItsNotGoodName/x-panelwm/pkg/sutureext"
	"github.com/ItsNotGoodName/x-panelwm/wm"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Host   string `doc:"host to listen on, overrides the config file"`
	Port   int    `doc:"port to listen on, overrides the config file"`
	Config string `doc:"config file" default:".x-panelwm.yaml"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			configFilePath, err := filepath.Abs(options.Config)
			if err != nil {
				return err
			}

			driver, err := config.NewDriver(configFilePath)
			if err != nil {
				return err
			}

			store, err := config.NewStore(driver)
			if err != nil {
				return err
			}

			cfg, err := store.GetConfig()
			if err != nil {
				return err
			}

			session, err := cfg.SessionConfig()
			if err != nil {
				return fmt.Errorf("%s: %w", configFilePath, err)
			}

			thumbnailInterval, err := cfg.Thumbnails()
			if err != nil {
				return fmt.Errorf("%s: thumbnail_interval: %w", configFilePath, err)
			}

			host := headless.New(cfg.Rect())

			registry, err := wm.NewRegistry(host, session)
			if err != nil {
				return err
			}
			defer registry.Close()
			content.Register(registry)

			server := api.NewServer(registry, host, bus.NewHub[api.Event]())
			server.PersistGrid(func(grid geom.Grid) error {
				return store.UpdateConfig(func(cfg config.Config) (config.Config, error) {
					cfg.Session.Grid = grid
					return cfg, nil
				})
			})

			for range max(cfg.Desktops, 1) {
				if _, err := server.Subscribe(); err != nil {
					return err
				}
			}

			address := core.Address(cfg.Server.Host, cfg.Server.Port)
			if options.Host != "" || options.Port != 0 {
				listenHost, listenPort := cfg.Server.Host, cfg.Server.Port
				if options.Host != "" {
					listenHost = options.Host
				}
				if options.Port != 0 {
					listenPort = options.Port
				}
				address = core.Address(listenHost, listenPort)
			}

			super := sutureext.New("root", slog.Default())
			sutureext.Add(super, sutureext.NewServiceFunc("http", func(ctx context.Context) error {
				return ListenAndServe(ctx, address, api.NewRouter(server))
			}))
			if thumbnailInterval > 0 {
				sutureext.Add(super, sutureext.NewServiceFunc("thumbnails", func(ctx context.Context) error {
					return CaptureThumbnails(ctx, registry, thumbnailInterval)
				}))
			}

			return super.Serve(ctx)
		})
	})

	cli.Root().Version = build.Current.Version

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}

func ListenAndServe(ctx context.Context, address string, handler http.Handler) error {
	srv := &http.Server{
		Addr:    address,
		Handler: handler,
	}

	errC := make(chan error, 1)
	go func() {
		slog.Info("Listening", "address", address)
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// CaptureThumbnails refreshes the taskbar thumbnails of every desktop on each tick.
func CaptureThumbnails(ctx context.Context, registry *wm.Registry, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, desktop := range registry.Desktops() {
				if err := registry.RequestThumbnails(desktop); err != nil {
					slog.Warn("Failed to capture thumbnails", "desktop", desktop, "error", err)
				}
			}
		}
	}
}
