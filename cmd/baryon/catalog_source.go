package main

import (
	"github.com/scztt/baryon/catalog"
	"github.com/scztt/baryon/config"
	"github.com/scztt/baryon/httpcatalog"
	"github.com/scztt/baryon/yamlcatalog"
)

// loadCatalog resolves a Catalog source: a YAML fixture at
// yamlPath if given, otherwise the HTTP-backed catalog described by the
// config file at configPath.
func loadCatalog(configPath, yamlPath string) (catalog.Catalog, error) {
	if yamlPath != "" {
		return yamlcatalog.Load(yamlPath)
	}

	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return httpcatalog.New(settings.RepositoryURL, settings.CachePath, settings.CacheTimeout), nil
}
