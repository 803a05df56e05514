package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/sweetshop/internal/flagx"
	"github.com/dmitrijs2005/sweetshop/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify the timeout either as a string
// like "10s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabaseFile   string         `json:"database_file"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is given the function returns without
// touching cfg. Read or unmarshal errors panic; config problems should stop
// startup immediately.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
}
