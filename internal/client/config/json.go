package config

import (
	"encoding/json"
	"os"

	"photokeeper/internal/flagx"
	"photokeeper/internal/timex"
)

// jsonConfig is the DTO for the config file. timex.Duration lets intervals
// be written as "30s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SessionDBPath  *string         `json:"session_db_path"`
	DetailCacheTTL *timex.Duration `json:"detail_cache_ttl"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// Absent file flag: no-op. Fields missing from the file keep their current
// values. Read or parse errors panic; the config stage has no sane
// fallback.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDBPath != nil {
		cfg.SessionDBPath = *jc.SessionDBPath
	}
	if jc.DetailCacheTTL != nil {
		cfg.DetailCacheTTL = jc.DetailCacheTTL.Duration
	}
}
