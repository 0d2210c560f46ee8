package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"trivia-harvester/internal/adapter"
	"trivia-harvester/internal/adapter/opentdb"
	"trivia-harvester/internal/adapter/publish"
	"trivia-harvester/internal/cache"
	"trivia-harvester/internal/config"
	"trivia-harvester/internal/database"
	"trivia-harvester/internal/domain"
	"trivia-harvester/internal/handler"
	"trivia-harvester/internal/logger"
	"trivia-harvester/internal/repository"
	"trivia-harvester/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runOnce bool

func init() {
	runCmd.Flags().BoolVar(&runOnce, "once", false, "Run the harvest a single time and exit")
	runCmd.Flags().Float64("interval-hours", 1, "Hours to wait between runs in daemon mode, 0 runs once")
	runCmd.Flags().String("output", "results.json", "Path of the JSON file to write")
	_ = viper.BindPFlag("harvest.interval_hours", runCmd.Flags().Lookup("interval-hours"))
	_ = viper.BindPFlag("harvest.output_path", runCmd.Flags().Lookup("output"))
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--once] [--interval-hours <hours>] [--output <path>]",
	Short: "Harvests questions once or repeatedly and serves the status API when server.port is set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		if runOnce {
			cfg.Harvest.IntervalHours = 0
		}
		return runHarvester(cmd.Context(), cfg, logger.Get())
	},
}

// harvester holds the wired components of one process.
type harvester struct {
	pipeline *service.HarvestPipeline
	repeater *service.Repeater
	health   handler.HealthDependencies
	closers  []func() error
}

func (h *harvester) Close() {
	for i := len(h.closers) - 1; i >= 0; i-- {
		_ = h.closers[i]()
	}
}

func buildHarvester(ctx context.Context, cfg *config.Config, log *zap.Logger) (*harvester, error) {
	h := &harvester{}

	client := opentdb.NewHTTPClient(cfg.Harvest, log)
	discoverer := opentdb.NewHomepageCountDiscoverer(client, cfg.Harvest.HomeURL, log)
	fetcher := opentdb.NewAPIBatchFetcher(client, cfg.Harvest.APIURL, cfg.Harvest.BatchSize, log)
	accumulator := service.NewAccumulator(fetcher, service.AccumulatorOptions{
		PacingDelay:        cfg.Harvest.PacingDelay,
		MaxAttempts:        cfg.Harvest.MaxAttempts,
		Deadline:           cfg.Harvest.Deadline,
		TruncateToExpected: cfg.Harvest.TruncateToExpected,
	}, log)
	persister := service.NewFilePersister(cfg.Harvest.OutputPath, log)

	publishers := []domain.Publisher{publish.NewScriptPublisher(cfg.Publish.Script, log)}

	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			h.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		h.closers = append(h.closers, redisClient.Close)
		store := adapter.NewRedisSnapshotStore(redisClient)
		publishers = append(publishers, publish.NewCachePublisher(store, cfg.Redis.SnapshotTTL, log))
		h.health.Redis = store
		log.Info("Redis snapshot publishing enabled", zap.String("address", cfg.Redis.Address))
	}

	if cfg.DatabaseEnabled() {
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			h.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		h.closers = append(h.closers, db.Close)
		publishers = append(publishers, publish.NewRepositoryPublisher(repository.NewQuestionDatabaseAdapter(db), log))
		h.health.Database = handler.PingerFunc(db.PingContext)
		log.Info("Database publishing enabled", zap.String("host", cfg.DB.Host))
	}

	if cfg.Harvest.Daemon() {
		// One missed run is tolerated before /healthz reports the harvest as stale.
		h.health.MaxRunAge = 2*cfg.Harvest.Interval() + cfg.Harvest.Deadline
	}

	h.pipeline = service.NewHarvestPipeline(discoverer, accumulator, persister, publishers, cfg.Publish.Enabled, log)
	h.repeater = service.NewRepeater(h.pipeline, cfg.Harvest.Interval(), log)
	return h, nil
}

func runHarvester(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	h, err := buildHarvester(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer h.Close()

	if cfg.Server.Port == 0 {
		return h.repeater.Run(ctx)
	}

	healthChecker, err := handler.NewHealth(Version, h.pipeline, h.health)
	if err != nil {
		return fmt.Errorf("failed to create health checker: %w", err)
	}
	app := handler.NewApp(cfg.Server, handler.NewStatusHandler(h.pipeline), healthChecker)

	g, gctx := errgroup.WithContext(ctx)
	repeaterDone := make(chan struct{})

	g.Go(func() error {
		defer close(repeaterDone)
		return h.repeater.Run(gctx)
	})

	g.Go(func() error {
		addr := net.JoinHostPort("", strconv.Itoa(cfg.Server.Port))
		log.Info("Starting status server", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("status server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-repeaterDone:
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("Shutting down status server")
		return app.ShutdownWithContext(shutdownCtx)
	})

	return g.Wait()
}
