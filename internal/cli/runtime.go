package cli

import (
	"fmt"

	"github.com/gzhole/gravilog/internal/assess"
	"github.com/gzhole/gravilog/internal/config"
	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/logger"
	"github.com/gzhole/gravilog/internal/risk"
)

// runtime is everything a command needs to assess symptoms.
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	kb     *knowledge.Base
	packs  []knowledge.PackInfo
	engine *assess.Engine
}

func newRuntime() (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Path, level)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	strategy, err := risk.StrategyByName(cfg.Scoring.Strategy)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	kb := knowledge.Load(cfg.Knowledge.Paths(), log)
	merged, packs, err := knowledge.LoadPacks(cfg.Knowledge.PacksDir, kb)
	if err != nil {
		log.Warn("failed to load knowledge packs", logger.F("dir", cfg.Knowledge.PacksDir), logger.Err(err))
	} else {
		kb = merged
	}
	for _, p := range packs {
		if p.Err != nil {
			log.Warn("knowledge pack rejected", logger.F("pack", p.Name), logger.F("path", p.Path), logger.Err(p.Err))
		}
	}

	return &runtime{
		cfg:    cfg,
		log:    log,
		kb:     kb,
		packs:  packs,
		engine: assess.NewEngine(kb, strategy, log),
	}, nil
}

func (r *runtime) Close() error {
	return r.log.Close()
}
