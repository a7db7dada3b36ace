package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"bassline/internal/config"
	"bassline/internal/idmap"
	"bassline/internal/logging"
	"bassline/internal/profile"
	"bassline/internal/psarc"
	"bassline/internal/savefile"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		opts := logging.Options{Level: "info", Format: "console"}
		if err == nil && cfg != nil {
			opts.Level = cfg.Logging.Level
			opts.Format = cfg.Logging.Format
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			opts.Level = "debug"
		}
		logger, err := logging.New(opts)
		if err != nil {
			logger = logging.NewNop()
		}
		c.log = logger
	})
	return c.log
}

func (c *commandContext) extractor() (psarc.Extractor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return psarc.NewToolExtractor(cfg.Archives.ExtractorBin, cfg.Archives.ExtractorArgs, c.logger()), nil
}

func (c *commandContext) archiveDirs(overrides []string) ([]string, error) {
	if len(overrides) > 0 {
		return overrides, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if len(cfg.Archives.Dirs) == 0 {
		return nil, fmt.Errorf("no archive directories configured; set archives.dirs or pass --dir")
	}
	return cfg.Archives.Dirs, nil
}

// resolveSaveFile picks the save path: explicit flag, configured path, then
// Steam userdata discovery.
func (c *commandContext) resolveSaveFile(flagPath string) (string, error) {
	if strings.TrimSpace(flagPath) != "" {
		return flagPath, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(cfg.SaveFile.Path) != "" {
		return cfg.SaveFile.Path, nil
	}
	return savefile.Locate(cfg.SaveFile.SteamUserdata)
}

// loadPlayerProfile runs the decode-and-parse half of the pipeline: save file
// discovery, decoding, identifier map, profile parse.
func (c *commandContext) loadPlayerProfile(ctx context.Context, savePath string, forceMap bool) (profile.PlayerProfile, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return profile.PlayerProfile{}, err
	}

	resolved, err := c.resolveSaveFile(savePath)
	if err != nil {
		return profile.PlayerProfile{}, err
	}

	raw, err := savefile.Decode(resolved)
	if err != nil {
		return profile.PlayerProfile{}, err
	}

	extractor, err := c.extractor()
	if err != nil {
		return profile.PlayerProfile{}, err
	}
	dirs, err := c.archiveDirs(nil)
	if err != nil {
		return profile.PlayerProfile{}, err
	}
	builder := idmap.NewBuilder(cfg.IDMapPath(), extractor, c.logger())
	ids, err := builder.Build(ctx, dirs, forceMap)
	if err != nil {
		return profile.PlayerProfile{}, err
	}

	return profile.Parse(raw, ids, c.logger()), nil
}
