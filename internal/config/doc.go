// Package config manages custdesk's persistent configuration.
//
// The configuration file lives at $XDG_CONFIG_HOME/custdesk/config.yaml (or
// the platform equivalent) and holds named profiles, each pointing at a
// customer collection URL:
//
//	version: 1
//	profiles:
//	    local:
//	        base_url: http://localhost:8080/customerapi
//	preferences:
//	    active_profile: local
//	    timeout_sec: 0
//
// Resolve combines the file with the --api-url flag and the CUSTDESK_API_URL
// environment variable (optionally loaded from a .env file by LoadDotEnv).
package config
