package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Payoff Calculator Configuration

[engine]
# Default sampling step for payoff curves
step = 1.0
# Default evaluation window padding around the strike range, in percent
range_padding_percent = 20.0

[chart]
# ASCII chart dimensions in terminal cells
width = 72
height = 18

[ui]
# Enable colored output
color_enabled = true

[history]
# Record evaluations in a local SQLite database
enabled = true
# Database file path (override with PAYOFF_DB_PATH)
db_path = "~/.config/options-payoff/history.db"

[server]
# HTTP API listen address (override with PAYOFF_SERVER_ADDR)
host = "127.0.0.1"
port = 8080

[logging]
# Log level: debug, info, warn, error (override with PAYOFF_LOG_LEVEL)
level = "info"
# Log to the terminal
console = true
# Log to a rotated file
file = true
file_path = "~/.config/options-payoff/logs/payoff.log"
max_size_mb = 100
max_backups = 7
max_age_days = 30
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
