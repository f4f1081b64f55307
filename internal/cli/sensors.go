package cli

import (
	// Sensor types register themselves on import.
	_ "github.com/nathanbaker/peek/internal/script"
	_ "github.com/nathanbaker/peek/internal/systemd"
)
