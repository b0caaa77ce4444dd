package conf

import (
	"fmt"
	"os"

	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
)

// PolygonConfig holds the Polygon API endpoint and credentials. An empty
// APIURL means the production endpoint.
type PolygonConfig struct {
	APIURL string
	Key    string
	Secret string
}

// LoadPolygonConfig reads credentials from the [polygon] section of the INI
// file at path. A .env file in the working directory is loaded first, and
// the POLYGON_KEY, POLYGON_SECRET and POLYGON_API_URL environment variables
// fill any entry the file leaves out. Missing key or secret is fatal; no
// network call happens before this check passes.
func LoadPolygonConfig(path string) (*PolygonConfig, error) {
	_ = godotenv.Load()

	cfg := &PolygonConfig{
		APIURL: os.Getenv("POLYGON_API_URL"),
		Key:    os.Getenv("POLYGON_KEY"),
		Secret: os.Getenv("POLYGON_SECRET"),
	}

	if _, err := os.Stat(path); err == nil {
		file, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		section, err := file.GetSection("polygon")
		if err != nil {
			return nil, fmt.Errorf("config file %s must contain a [polygon] section", path)
		}

		if v := section.Key("key").String(); v != "" {
			cfg.Key = v
		}
		if v := section.Key("secret").String(); v != "" {
			cfg.Secret = v
		}
		if v := section.Key("api_url").String(); v != "" {
			cfg.APIURL = v
		}
	}

	if cfg.Key == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("polygon API key and secret must be provided in %s or via POLYGON_KEY/POLYGON_SECRET", path)
	}

	return cfg, nil
}
