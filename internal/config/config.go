package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// EnvPath names the environment variable that points at the config file.
const EnvPath = "CHESS_CONFIG"

type Config struct {
	Server    Server    `yaml:"server"`
	WebSocket WebSocket `yaml:"websocket"`
	Storage   Storage   `yaml:"storage"`
}

type Server struct {
	Addr         string `yaml:"addr"`
	AllowOrigins string `yaml:"allowOrigins"`
	RequestLog   bool   `yaml:"requestLog"`
}

type WebSocket struct {
	ReadBufferSize  int `yaml:"readBufferSize"`
	WriteBufferSize int `yaml:"writeBufferSize"`
}

// Storage configures the game archive. An empty Dir with InMemory unset
// disables archiving.
type Storage struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"inMemory"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":3000",
			AllowOrigins: "http://localhost:5173",
			RequestLog:   true,
		},
		WebSocket: WebSocket{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls
// back to $CHESS_CONFIG, and to the bare defaults when that is unset too.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes raw onto cfg, keeping the fields raw leaves out.
func Parse(raw []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if cfg.WebSocket.ReadBufferSize < 0 || cfg.WebSocket.WriteBufferSize < 0 {
		return fmt.Errorf("parse config: negative websocket buffer size")
	}
	return nil
}
