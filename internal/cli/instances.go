package cli

import (
	"sort"

	"github.com/nathanbaker/peek/internal/config"
	"github.com/nathanbaker/peek/internal/errors"
	"github.com/nathanbaker/peek/internal/sensor"
	"github.com/nathanbaker/peek/internal/util"
)

// instance is one configured, initialized sensor.
type instance struct {
	Name   string
	Config config.SensorConfig
	Sensor sensor.Sensor
}

// loadConfig finds, loads, and validates the active config file.
func loadConfig() (*config.Config, error) {
	cfgPath, err := config.Find(Config())
	if err != nil {
		return nil, err
	}
	if cfgPath == "" {
		return nil, errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'peek init' to create a .peek.yaml config file")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildInstance constructs and initializes one sensor from its declaration.
func buildInstance(name string, sc config.SensorConfig) (*instance, error) {
	s, err := sensor.New(sc.Type)
	if err != nil {
		return nil, err
	}

	if _, err := s.Init(sc.Instance(name)); err != nil {
		return nil, err
	}

	return &instance{Name: name, Config: sc, Sensor: s}, nil
}

// buildAll initializes every configured sensor, sorted by name.
func buildAll(cfg *config.Config) ([]*instance, error) {
	names := make([]string, 0, len(cfg.Sensors))
	for name := range cfg.Sensors {
		names = append(names, name)
	}
	sort.Strings(names)

	instances := make([]*instance, 0, len(names))
	for _, name := range names {
		inst, err := buildInstance(name, cfg.Sensors[name])
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}

	if len(instances) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No sensors configured",
			"Add sensors to "+config.ConfigFileName+" (see 'peek init' for examples)")
	}

	return instances, nil
}

// resolveSensorName picks the sensor to sample: the explicit argument, or
// the config default, with a helpful error listing what exists.
func resolveSensorName(cfg *config.Config, arg string) (string, error) {
	name := arg
	if name == "" {
		name = cfg.Default
	}
	if name == "" {
		return "", errors.New(errors.ErrConfig,
			"No sensor specified and no default configured",
			"Pass a sensor name, or set 'default' in "+config.ConfigFileName)
	}

	if _, ok := cfg.Sensors[name]; !ok {
		names := make([]string, 0, len(cfg.Sensors))
		for n := range cfg.Sensors {
			names = append(names, n)
		}
		sort.Strings(names)
		return "", errors.New(errors.ErrConfig,
			"Unknown sensor: "+name,
			"Configured sensors: "+util.JoinOrNone(names))
	}

	return name, nil
}
