package main

import (
	"fmt"
	"os"

	"github.com/livedreligion/wheresreligion/internal/config"
	"github.com/livedreligion/wheresreligion/internal/notestore"
)

func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	loader, err := config.NewConfigLoader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func newStoreClient(cfg *config.Config) (*notestore.Client, error) {
	if cfg.NoteStore.BaseURL == "" {
		return nil, fmt.Errorf("notestore.base_url is not configured. Set it in the config file or NEXT_PUBLIC_RERUM_PREFIX")
	}
	return notestore.NewClient(notestore.Config{
		BaseURL:      cfg.NoteStore.BaseURL,
		PublishedURL: cfg.NoteStore.PublishedURL,
		Type:         cfg.NoteStore.Type,
	}), nil
}
