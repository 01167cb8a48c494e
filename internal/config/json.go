package config

import (
	"encoding/json"
	"os"

	"github.com/dspetrov/docvault/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The passphrase
// is deliberately absent: secrets do not belong in config files.
type JsonConfig struct {
	DataDir     string `json:"data_dir"`
	DBName      string `json:"db_name"`
	KeyFileName string `json:"key_file_name"`
}

// parseJson overlays Config with values loaded from a JSON file named by the
// -c or -config flag. If no flag is given, nothing is loaded. Read or
// unmarshal errors panic; the caller treats them as startup-fatal.
//
// Intended usage is: defaults -> parseJson -> parseFlags -> parseEnv, where
// later stages override earlier ones.
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

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.DBName != "" {
		cfg.DBName = jc.DBName
	}
	if jc.KeyFileName != "" {
		cfg.KeyFileName = jc.KeyFileName
	}
}
