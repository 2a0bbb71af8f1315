// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources, lowest precedence first:

 1. a .env file in the working directory (optional, godotenv)
 2. environment variables (caarlos0/env, with envDefault values)
 3. CLI flags

The result is checked with go-playground/validator.

# Settings

	TRUCO_STORE          -t            memory, sqlite (default), postgres, redis
	DATABASE_URL         -d            default file:truco.db
	REDIS_URL            -redis        required for the redis store
	TRUCO_MAX_RETRIES    -retries      default 5
	TRUCO_USERS          -users        comma separated; empty lets anyone in
	TRUCO_HISTORY_LIMIT  -history      default 5
	TRUCO_CONFIRM_TTL    -confirm-ttl  default 5m
	TRUCO_TIME_FORMAT    -time-format  default %Y-%m-%d %H:%M:%S
	LOG_FILE             -log-file     JSON logs, rotated by lumberjack
	LOG_LEVEL            -log-level    debug, info (default), warn, error

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logging.Setup(cfg)
*/
package cliparse
