package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"seichi/internal/bootstrap/config"
	"seichi/internal/bootstrap/database"
	"seichi/internal/bootstrap/logging"
	cacheinfra "seichi/internal/infrastructure/cache"
	sqliterepo "seichi/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "seichi/internal/infrastructure/persistence/sqlite/uow"
	"seichi/internal/infrastructure/storage"
	"seichi/internal/ports"
	"seichi/internal/usecase/guestbook"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewGuestbookRepository,
			fx.As(new(ports.GuestbookRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewTravelRepository,
			fx.As(new(ports.TravelRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewPointRepository,
			fx.As(new(ports.PointRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(provideImageStore),
	fx.Provide(provideService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideImageStore(cfg config.Config) (ports.ImageStore, error) {
	return storage.NewLocalImageStore(cfg.Storage.Dir, cfg.Storage.BaseURL)
}

func provideService(
	guestbooks ports.GuestbookRepository,
	travel ports.TravelRepository,
	points ports.PointRepository,
	uow ports.UnitOfWork,
	window ports.Cache,
	images ports.ImageStore,
	cfg config.Config,
) *guestbook.Service {
	return guestbook.NewService(guestbooks, travel, points, uow, window, images, cfg.Points.CertificationAward)
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}
