package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nathanbaker/peek/internal/errors"
)

// sampleCommand samples one sensor and prints the rendered value.
func sampleCommand(arg, formatFlag string, jsonOut bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name, err := resolveSensorName(cfg, arg)
	if err != nil {
		return err
	}

	inst, err := buildInstance(name, cfg.Sensors[name])
	if err != nil {
		return err
	}

	format := formatFlag
	if format == "" {
		format = inst.Config.EffectiveFormat()
	}

	ctx := context.Background()
	res := inst.Sensor.Sample(ctx, inst.Config.EffectiveRate(), format)
	defer inst.Sensor.Stop(ctx) //nolint:errcheck // Stop has nothing to fail on here

	if jsonOut {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrSensor,
				"Failed to encode sample result",
				"This shouldn't happen - please report this bug")
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(res.Value)
	return nil
}
