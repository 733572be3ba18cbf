// Package config holds the environment-variable configuration the
// command-line driver reads before looking at its flags: flags always
// win when both are set, the environment just supplies a default for
// unattended or scripted invocations.
package config

import "github.com/caarlos0/env/v6"

// Config is every setting the driver can take from the environment.
type Config struct {
	// Debug turns on the Graphviz DOT dump of each pipeline stage's
	// tree, also reachable with -debug.
	Debug bool `env:"CC_DEBUG" envDefault:"false"`

	// DotDir names the directory the DOT dumps are written into when
	// Debug is on. When empty, they go beside the output file. It has
	// no effect while Debug is off.
	DotDir string `env:"CC_DOT_DIR" envDefault:""`
}

// Load reads Config from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
