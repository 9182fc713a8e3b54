// Package config handles loading and parsing the prlogs configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided (--config), use it
//  2. Otherwise, use ~/.config/prlogs/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	repo = "five82/spindle"          # used when -R is not given
//	refresh_interval = 0             # seconds; 0 reloads only on "r"
//	max_lines_per_step = 5000        # trailing lines kept per step; 0 keeps all
//	fetch_concurrency = 4            # job logs downloaded at once
//	auto_expand_failures = true      # open failing jobs and steps on load
//	sort_failed_first = true         # failing workflows first, jobs by name
//	drop_empty_system_jobs = true    # hide "/system" jobs without log lines
//	log_file = "~/.local/state/prlogs/debug.log"
//	log_level = "debug"              # used with --debug
//
// Every field is optional. Boolean fields default to true, so they are read
// as pointers to tell "unset" from "false". Tilde expansion is applied to
// log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors ("parse config: ...")
//
// Missing config files are NOT an error.
package config
