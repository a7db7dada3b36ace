package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeArchives(); err != nil {
		return err
	}
	if err := c.normalizeSaveFile(); err != nil {
		return err
	}
	c.normalizeJellyfin()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeArchives() error {
	dirs := make([]string, 0, len(c.Archives.Dirs))
	for _, dir := range c.Archives.Dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("archives.dirs: %w", err)
		}
		dirs = append(dirs, expanded)
	}
	c.Archives.Dirs = dirs
	c.Archives.ExtractorBin = strings.TrimSpace(c.Archives.ExtractorBin)
	if c.Archives.ExtractorBin == "" {
		c.Archives.ExtractorBin = defaultExtractorBin
	}
	return nil
}

func (c *Config) normalizeSaveFile() error {
	var err error
	if strings.TrimSpace(c.SaveFile.Path) != "" {
		if c.SaveFile.Path, err = expandPath(c.SaveFile.Path); err != nil {
			return fmt.Errorf("save_file.path: %w", err)
		}
	}
	if strings.TrimSpace(c.SaveFile.SteamUserdata) == "" {
		c.SaveFile.SteamUserdata = defaultSteamUserdata
	}
	if c.SaveFile.SteamUserdata, err = expandPath(c.SaveFile.SteamUserdata); err != nil {
		return fmt.Errorf("save_file.steam_userdata: %w", err)
	}
	return nil
}

func (c *Config) normalizeJellyfin() {
	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
	if c.Jellyfin.TimeoutSeconds <= 0 {
		c.Jellyfin.TimeoutSeconds = defaultJellyfinTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
