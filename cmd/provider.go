package cmd

import (
	"time"

	"lending/core"
	"lending/service/lending"
	"lending/service/oracle"
	"lending/service/session"
	"lending/service/valuation"
	"lending/store/account"
	"lending/store/asset"
	"lending/store/event"
	"lending/store/ledger"
	"lending/worker"
	"lending/worker/healthwatch"
	"lending/worker/notifier"

	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
	_ "github.com/lib/pq"
)

const (
	tokenCacheExpiration = time.Minute
	healthSnapshotTTL    = 24 * time.Hour
)

type stores struct {
	// db is nil when everything is kept in memory
	db       *db.DB
	events   core.IEventStore
	assets   core.IAssetStore
	ledgers  core.ILedgerStore
	accounts core.IAccountStore
}

func (s *stores) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

// provideStores empty db dialect keeps registry, ledger and events in memory
func provideStores() *stores {
	s := &stores{
		accounts: provideAccountStore(),
	}

	if cfg.DB.Dialect == "" {
		events := event.NewMemory()
		s.events = events
		s.assets = asset.Memory(events)
		s.ledgers = ledger.Memory(events)
		return s
	}

	s.db = provideDatabase()
	s.events = event.New(s.db)
	s.assets = asset.Cache(asset.New(s.db), tokenCacheExpiration)
	s.ledgers = ledger.New(s.db)
	return s
}

func provideAccountStore() core.IAccountStore {
	if cfg.Redis.Addr == "" {
		return account.Memory()
	}

	return account.New(provideRedis(), healthSnapshotTTL)
}

// ------------------service------------------------------------

func provideOracleService() core.IOracleService {
	s, err := oracle.New(cfg.PriceOracle)
	if err != nil {
		panic(err)
	}

	return s
}

func provideValuationService(s *stores) core.IValuationService {
	return valuation.New(s.ledgers, s.assets, provideOracleService(), cfg.App.LiquidationThreshold)
}

func provideLendingService(s *stores, valuationz core.IValuationService) core.ILendingService {
	return lending.New(provideConfig(), s.assets, s.ledgers, valuationz)
}

func provideSession() core.Session {
	return session.New(cfg.App.Sessions)
}

// ------------------worker------------------------------------

func provideCheckpoint(s *stores) notifier.Checkpoint {
	if s.db == nil {
		return notifier.MemoryCheckpoint()
	}

	return notifier.PropertyCheckpoint(propertystore.New(s.db))
}

func provideWorkers(s *stores, valuationz core.IValuationService) []worker.Worker {
	workers := []worker.Worker{
		healthwatch.New(cfg.HealthWatch.Spec, s.ledgers, valuationz, s.accounts),
	}

	if cfg.Notifier.Webhook != "" {
		workers = append(workers, notifier.New(cfg.Notifier.Spec, s.events, provideCheckpoint(s), notifier.Webhook(cfg.Notifier.Webhook)))
	}

	return workers
}
