// Package config provides application configuration for Dragons Aside.
//
// The config package handles:
//   - Loading settings from a YAML file
//   - Loading .env files into the environment
//   - Environment variable overrides
//   - Validation
//
// Configuration Format:
//
//	seed: 0              # 0 deals each session from a random seed
//	logging:
//	  level: info
//	  format: text       # or json
//	  console_enabled: true
//	  file_enabled: false
//	  file_path: logs/dragonsaside.log
//	sessions:
//	  event_limit: 256
//	  max_idle: 2h
//	  cleanup_interval: 10m
//	mcp:
//	  name: dragons-aside
//	  default_session: true
//
// Environment Overrides:
//
//	DRAGONS_SEED  seed
//	LOG_LEVEL     logging.level
//	LOG_FORMAT    logging.format
//	LOG_FILE      logging.file_path (enables file logging)
//	CONFIG_DIR    directory searched for dragons.yaml when no path is given
//
// Usage:
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load(path)
//	if err != nil {
//		log.Fatal(err)
//	}
package config
