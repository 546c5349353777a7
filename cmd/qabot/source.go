package main

import (
	"errors"
	"fmt"
	"io"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	"github.com/MegaGrindStone/go-light-qa/storage"
)

// openSource builds the dataset source described by cfg. Sources are read in the order
// CSV, Bolt, Redis. A source that fails to open is left out and reported in the returned
// error while the others are still returned; src is nil only when none opened.
// The returned closer releases database handles and is never nil.
func openSource(cfg datasetConfig) (golightqa.DatasetSource, func() error, error) {
	if cfg.empty() {
		cfg.CSV = storage.DefaultCSVPath
	}

	var (
		sources storage.Multi
		closers []io.Closer
		errs    []error
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		return errors.Join(errs...)
	}

	if cfg.CSV != "" {
		sources = append(sources, storage.NewCSV(cfg.CSV))
	}

	if cfg.Bolt != "" {
		b, err := storage.NewBolt(cfg.Bolt, cfg.BoltBucket)
		if err != nil {
			errs = append(errs, fmt.Errorf("bolt dataset: %w", err))
		} else {
			sources = append(sources, b)
			closers = append(closers, b)
		}
	}

	if cfg.RedisAddr != "" {
		r, err := storage.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKey)
		if err != nil {
			errs = append(errs, fmt.Errorf("redis dataset: %w", err))
		} else {
			sources = append(sources, r)
			closers = append(closers, r)
		}
	}

	err := errors.Join(errs...)
	switch len(sources) {
	case 0:
		return nil, closeAll, err
	case 1:
		return sources[0], closeAll, err
	default:
		return sources, closeAll, err
	}
}
