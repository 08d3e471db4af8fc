// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// types. It exists so the JSON file format can evolve separately from the
// env/flag mapping, and so durations can be written as "30s" strings.
type StructuredJSONConfig struct {
	App struct {
		EncryptionKey   string `json:"encryption_key"`
		EncryptionMode  string `json:"encryption_mode"`
		ServerSecret    string `json:"server_secret"`
		CronAPIKey      string `json:"cron_api_key"`
		AuthTokenSecret string `json:"auth_token_secret"`
		Version         string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		AgentInterval    Duration `json:"agent_interval"`
		UsageInterval    Duration `json:"usage_interval"`
		ForecastScript   string   `json:"forecast_script"`
		PreventionScript string   `json:"prevention_script"`
		UsageScript      string   `json:"usage_script"`
		ServerBaseURL    string   `json:"server_base_url"`
		AgentAccountID   string   `json:"agent_account_id"`
		AgentProviders   []string `json:"agent_providers"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			EncryptionKey:   jsonCfg.App.EncryptionKey,
			EncryptionMode:  jsonCfg.App.EncryptionMode,
			ServerSecret:    jsonCfg.App.ServerSecret,
			CronAPIKey:      jsonCfg.App.CronAPIKey,
			AuthTokenSecret: jsonCfg.App.AuthTokenSecret,
			Version:         jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			AgentInterval:    time.Duration(jsonCfg.Workers.AgentInterval),
			UsageInterval:    time.Duration(jsonCfg.Workers.UsageInterval),
			ForecastScript:   jsonCfg.Workers.ForecastScript,
			PreventionScript: jsonCfg.Workers.PreventionScript,
			UsageScript:      jsonCfg.Workers.UsageScript,
			ServerBaseURL:    jsonCfg.Workers.ServerBaseURL,
			AgentAccountID:   jsonCfg.Workers.AgentAccountID,
			AgentProviders:   jsonCfg.Workers.AgentProviders,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
