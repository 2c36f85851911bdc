// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package httpapi

import "github.com/kelseyhightower/envconfig"

// Config holds the configuration for the HTTP service.
// Environment variables are automatically parsed from the REACH_ prefix.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage Configuration
	DataDir string `envconfig:"DATA_DIR" default:"./data"`

	// AI Configuration
	AIHost  string `envconfig:"AI_HOST" default:"http://localhost:11434"`
	AIModel string `envconfig:"AI_MODEL" default:"qwen2.5:3b"`
	AIToken string `envconfig:"AI_TOKEN" default:""`

	// AgentEnabled gates the LLM-backed voice search path. When false
	// every voice search uses the simple keyword fallback.
	AgentEnabled bool `envconfig:"AGENT_ENABLED" default:"true"`

	// Enrichment Configuration
	EnrichAPIKey string `envconfig:"ENRICH_API_KEY" default:""`
}

// LoadConfig reads configuration from REACH_-prefixed environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("reach", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
