package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/internal/external/alpaca"
	"github.com/stonjarli/backend/internal/external/finnhub"
	"github.com/stonjarli/backend/internal/external/fred"
	"github.com/stonjarli/backend/internal/regime"
	"github.com/stonjarli/backend/internal/sentiment"
	"github.com/stonjarli/backend/internal/strategy"
	"github.com/stonjarli/backend/internal/strategyconfig"
	"github.com/stonjarli/backend/pkg/config"
	"github.com/stonjarli/backend/pkg/database"
	"github.com/stonjarli/backend/pkg/httputil"
	"github.com/stonjarli/backend/pkg/logger"
	"github.com/stonjarli/backend/pkg/redis"
)

// deps is the wired application graph shared by the CLI commands.
// Each command builds only the capabilities it needs via the require*
// methods, so e.g. `trader regime` runs without brokerage credentials.
type deps struct {
	cfg *config.Config
	log *logger.Logger

	db    *database.DB
	cache *redis.Cache

	market contracts.MarketData
	broker contracts.Broker
	regime *regime.Classifier

	classifier contracts.SentimentClassifier
	recorder   contracts.SentimentRecorder

	strategies map[string]*strategy.Orchestrator
	exitEngine *strategy.ExitEngine
}

// newDeps loads config, logging and the optional redis cache.
func newDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
		cfg.LogFormat = "console"
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, caching disabled")
		redisClient, _ = redis.New(&config.Config{})
	}

	return &deps{
		cfg:   cfg,
		log:   log,
		cache: redis.NewCache(redisClient, "trader"),
	}, nil
}

// requireMarket wires the Finnhub market-data client.
func (d *deps) requireMarket() error {
	if d.market != nil {
		return nil
	}
	if err := d.cfg.RequireFinnhub(); err != nil {
		return err
	}
	d.market = finnhub.NewClient(d.cfg.Finnhub, httputil.New(d.log), d.log)
	return nil
}

// requireBroker wires the Alpaca brokerage client.
func (d *deps) requireBroker() error {
	if d.broker != nil {
		return nil
	}
	if err := d.cfg.RequireAlpaca(); err != nil {
		return err
	}
	d.broker = alpaca.NewClient(d.cfg.Alpaca, httputil.New(d.log), d.log)
	return nil
}

// requireRegime wires the FRED-backed regime classifier.
func (d *deps) requireRegime() error {
	if d.regime != nil {
		return nil
	}
	fredClient := fred.NewClient(d.cfg.FRED, httputil.New(d.log), d.log)
	d.regime = regime.NewClassifier(fredClient, regime.DefaultConfig(), d.cache, d.log)
	return nil
}

// requireSentiment wires the Gemini classifier and, when a database is
// configured, the verdict log. Without a database verdicts are dropped.
func (d *deps) requireSentiment(ctx context.Context) error {
	if d.classifier != nil {
		return nil
	}
	if err := d.cfg.RequireGemini(); err != nil {
		return err
	}

	classifier, err := sentiment.NewGeminiClassifier(ctx, d.cfg.Gemini, d.log)
	if err != nil {
		return err
	}
	d.classifier = classifier
	d.recorder = sentiment.NopRecorder{}

	if d.cfg.Database.URL != "" {
		db, err := database.New(d.cfg)
		if err != nil {
			d.log.WithError(err).Warn("Database unavailable, sentiment verdicts will not be recorded")
			return nil
		}
		d.db = db

		repo := sentiment.NewRepository(db.Pool, d.log)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		d.recorder = repo
	}

	return nil
}

// requireStrategies loads every YAML file in the strategy directory and
// builds an orchestrator per variant.
func (d *deps) requireStrategies(ctx context.Context) error {
	if d.strategies != nil {
		return nil
	}
	if err := d.requireMarket(); err != nil {
		return err
	}
	if err := d.requireBroker(); err != nil {
		return err
	}
	if err := d.requireRegime(); err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(strategyDir, "*.yaml"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no strategy files found in %s", strategyDir)
	}
	sort.Strings(paths)

	d.strategies = make(map[string]*strategy.Orchestrator, len(paths))
	for _, path := range paths {
		cfg, err := strategyconfig.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load strategy %s: %w", path, err)
		}

		sdeps := strategy.Deps{
			Market: d.market,
			Broker: d.broker,
			Regime: d.regime,
		}
		if cfg.Filters.Sentiment.Enable {
			if err := d.requireSentiment(ctx); err != nil {
				return fmt.Errorf("strategy %s: %w", cfg.Meta.StrategyID, err)
			}
			sdeps.Sentiment = d.classifier
			sdeps.Recorder = d.recorder
		}

		orch, err := strategy.New(*cfg, sdeps, d.log)
		if err != nil {
			return err
		}
		d.strategies[cfg.Meta.StrategyID] = orch

		hash, _ := strategyconfig.Hash(cfg)
		d.log.WithFields(map[string]interface{}{
			"strategy":    cfg.Meta.StrategyID,
			"config_hash": hash[:12],
			"source":      path,
		}).Info("Strategy loaded")
	}

	d.exitEngine = strategy.NewExitEngine(d.broker, strategy.DefaultExitConfig(), d.log)

	return nil
}

// close releases held resources.
func (d *deps) close() {
	if d.db != nil {
		d.db.Close()
	}
}
