package command

import (
	"fmt"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-voxsync/internal/messaging"
	"github.com/pixil98/go-voxsync/internal/room"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	workers := service.WorkerList{}

	// Optional event mirror
	var storeOpts []room.StoreOpt
	if cfg.Nats != nil {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		mirror := messaging.NewEventMirror(ns, cfg.Nats.subjectPrefix())
		storeOpts = append(storeOpts, room.WithEventSink(mirror))
		workers["nats"] = ns
	}

	cat, err := cfg.Catalog.buildCatalog()
	if err != nil {
		return nil, fmt.Errorf("creating block catalog: %w", err)
	}

	// A nil *Catalog must not become a non-nil BlockTypes.
	var types room.BlockTypes
	if cat != nil {
		types = cat
	}

	manager, err := cfg.Rooms.buildManager(room.NewStore(storeOpts...), types)
	if err != nil {
		return nil, fmt.Errorf("creating room manager: %w", err)
	}

	drv, err := cfg.Rooms.buildDriver(manager)
	if err != nil {
		return nil, fmt.Errorf("creating driver: %w", err)
	}
	workers["driver"] = drv

	hl, err := cfg.Http.buildListener(manager, cat, cfg.Rooms.handlerOpts()...)
	if err != nil {
		return nil, fmt.Errorf("creating http listener: %w", err)
	}
	workers["http"] = hl

	return workers, nil
}
