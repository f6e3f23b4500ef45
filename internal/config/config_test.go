package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Store: StoreConfig{Addrs: []string{"localhost:6379"}},
		Encoder: EncoderConfig{
			Model:   "Qwen/Qwen3-Embedding-8B",
			BaseURL: "https://api.example.com/v1",
		},
		Reranker: RerankerConfig{
			Model:   "ms-marco-MiniLM-L-12-v2",
			BaseURL: "http://localhost:8081",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no port", func(c *Config) { c.HTTP.Port = 0 }},
		{"no store addrs", func(c *Config) { c.Store.Addrs = nil }},
		{"no encoder model", func(c *Config) { c.Encoder.Model = "" }},
		{"no reranker model", func(c *Config) { c.Reranker.Model = "" }},
		{"no reranker url", func(c *Config) { c.Reranker.BaseURL = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_PipelineSizes(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.FinalK = 30
	cfg.Pipeline.CandidateK = 20
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when final_k exceeds candidate_k")
	}

	cfg = validConfig()
	cfg.Pipeline.CandidateK = 200
	cfg.Pipeline.NumCandidates = 100
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when candidate_k exceeds num_candidates")
	}
}

func TestApplyDefaults_PipelineSizes(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Pipeline.NumCandidates != 100 {
		t.Errorf("expected num_candidates 100, got %d", cfg.Pipeline.NumCandidates)
	}
	if cfg.Pipeline.CandidateK != 20 {
		t.Errorf("expected candidate_k 20, got %d", cfg.Pipeline.CandidateK)
	}
	if cfg.Pipeline.FinalK != 9 {
		t.Errorf("expected final_k 9, got %d", cfg.Pipeline.FinalK)
	}
	if cfg.Encoder.BatchSize != 32 {
		t.Errorf("expected encoder batch size 32, got %d", cfg.Encoder.BatchSize)
	}
	if cfg.Encoder.Dimensions != 1024 {
		t.Errorf("expected encoder dimensions 1024, got %d", cfg.Encoder.Dimensions)
	}
	if cfg.Index.Name != "kb-data" {
		t.Errorf("expected default index name kb-data, got %q", cfg.Index.Name)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("SEMRANK_TEST_KEY", "secret")
	defer os.Unsetenv("SEMRANK_TEST_KEY")

	in := []byte("api_key: ${SEMRANK_TEST_KEY}\nurl: ${SEMRANK_TEST_MISSING:-http://fallback}")
	out := string(expandEnvVars(in))

	if out != "api_key: secret\nurl: http://fallback" {
		t.Errorf("unexpected expansion: %q", out)
	}
}
