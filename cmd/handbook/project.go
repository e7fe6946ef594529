package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	handbook "github.com/alnah/go-handbook"
	"github.com/alnah/go-handbook/internal/config"
)

// defaultConfigName is looked up when neither --config nor HANDBOOK_CONFIG
// is set.
const defaultConfigName = "handbook"

// project is a loaded config with environment and flag overrides applied.
type project struct {
	cfg     *config.Config
	workers int

	flags siteFlags
	env   *Environment
}

// openProject loads the config and applies overrides. Precedence:
// flags > environment > config file > defaults.
func openProject(f siteFlags, env *Environment) (*project, error) {
	p := &project{flags: f, env: env}
	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// reload re-reads the config file, so outline edits take effect.
func (p *project) reload() error {
	envCfg := loadEnvConfig(p.env.Getenv)

	cfg, err := loadConfig(p.flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	applySiteFlags(&p.flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.cfg = cfg
	p.workers = p.flags.workers
	if p.workers == 0 {
		p.workers = envCfg.Workers
	}
	return nil
}

// loadConfig finds the config: --config, then HANDBOOK_CONFIG, then a file
// named handbook.yaml in the working or user config directory.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		name = defaultConfigName
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applySiteFlags overrides config values with the flags that were given.
func applySiteFlags(f *siteFlags, cfg *config.Config) {
	if f.content != "" {
		cfg.Content.Dir = absPath(f.content)
	}
	if f.style != "" {
		cfg.Style.Name = f.style
	}
	if f.highlight != "" {
		cfg.Style.Highlight = f.highlight
	}
	if f.assetPath != "" {
		cfg.Style.Assets = absPath(f.assetPath)
	}
	if f.lineNumbersSet {
		cfg.Style.LineNumbers = f.lineNumbers
	}
}

// build renders the site described by the project.
func (p *project) build(ctx context.Context, logger *log.Logger) (*handbook.Site, error) {
	b, err := handbook.NewBuilder(
		handbook.WithTitle(p.cfg.Site.Title),
		handbook.WithDescription(p.cfg.Site.Description),
		handbook.WithLang(p.cfg.Site.Lang),
		handbook.WithStyle(p.cfg.Style.Name),
		handbook.WithHighlightStyle(p.cfg.Style.Highlight),
		handbook.WithLineNumbers(p.cfg.Style.LineNumbers),
		handbook.WithAssetPath(p.cfg.AssetsDir()),
		handbook.WithWorkers(p.workers),
		handbook.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	nodes, err := p.cfg.Nodes()
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, handbook.Input{
		Outline: nodes,
		Loader:  handbook.NewDirLoader(p.cfg.ContentDir()),
	})
}
