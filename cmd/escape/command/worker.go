package command

import (
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/pixil98/go-escape/internal/driver"
	"github.com/pixil98/go-escape/internal/messaging"
	"github.com/pixil98/go-escape/internal/progress"
	"github.com/pixil98/go-escape/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Local bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Storage
	db, err := cfg.Storage.BuildDatabase()
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}
	catalog, err := cfg.Storage.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	// Progress store for the configured save
	p := progress.NewProgress(db, cfg.saveSlot(),
		progress.WithCatalog(catalog),
		progress.WithInventorySlots(cfg.Storage.InventorySlots),
		progress.WithPublisher(messaging.NewNatsPublisher(natsServer)),
	)
	tracker := session.NewTracker(p.Settings, p.Slot())

	gateway := messaging.NewGateway(natsServer, p, tracker, catalog, messaging.WithCloser(db))

	// The driver commits play time while a session runs
	d := driver.NewGameDriver([]driver.Manager{tracker},
		driver.WithTickLength(cfg.tickInterval()),
		driver.WithMaxFailures(cfg.MaxTickFailures),
	)

	return service.WorkerList{
		"nats":    natsServer,
		"gateway": gateway,
		"driver":  d,
	}, nil
}
