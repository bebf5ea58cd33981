package core

import (
	"context"
	"fmt"
	"os"

	"propertycore/internal/infra/resource/postgres"
	"propertycore/internal/infra/resource/sqlite"
)

// Store driver names accepted by OpenResourcesFromEnv.
const (
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// OpenResourcesFromEnv selects the collection backend from the environment:
//
//	PROPERTYCORE_STORE_DRIVER: file|sqlite|postgres (default file)
//	PROPERTYCORE_DATA_DIR: directory for the file driver (dataDir argument wins)
//	PROPERTYCORE_SQLITE_PATH: database path for the sqlite driver
//	PROPERTYCORE_POSTGRES_DSN: connection string for the postgres driver
//
// The returned closer is nil for the file driver.
func OpenResourcesFromEnv(ctx context.Context, dataDir string) (ResourceSet, func() error, error) {
	driver := os.Getenv("PROPERTYCORE_STORE_DRIVER")
	if driver == "" {
		driver = StoreDriverFile
	}
	switch driver {
	case StoreDriverFile:
		if dataDir == "" {
			dataDir = os.Getenv("PROPERTYCORE_DATA_DIR")
		}
		set, err := FileResources(dataDir)
		return set, nil, err
	case StoreDriverSQLite:
		db, err := sqlite.Open(os.Getenv("PROPERTYCORE_SQLITE_PATH"))
		if err != nil {
			return ResourceSet{}, nil, err
		}
		return ResourceSet{
			Buildings:  db.Resource("buildings"),
			Apartments: db.Resource("apartments"),
			Tenants:    db.Resource("tenants"),
			Payments:   db.Resource("payments"),
		}, db.Close, nil
	case StoreDriverPostgres:
		db, err := postgres.Open(ctx, os.Getenv("PROPERTYCORE_POSTGRES_DSN"))
		if err != nil {
			return ResourceSet{}, nil, err
		}
		return ResourceSet{
			Buildings:  db.Resource("buildings"),
			Apartments: db.Resource("apartments"),
			Tenants:    db.Resource("tenants"),
			Payments:   db.Resource("payments"),
		}, db.Close, nil
	default:
		return ResourceSet{}, nil, fmt.Errorf("unknown store driver %s", driver)
	}
}
