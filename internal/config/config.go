// Package config loads the handful of environment-variable-driven knobs a
// long-running klox process exposes, using the same library the CLI
// boundary's own dependency graph already pulls in for flag/env parsing
// (github.com/caarlos0/env/v6, an indirect dependency of mna/mainer,
// promoted here to a direct, concrete use).
package config

import "github.com/caarlos0/env/v6"

// Config holds the ambient knobs described in the project's CLI section:
// a recursion guard for the evaluator, a default for the --print-ast flag,
// and the default transpile target.
type Config struct {
	// MaxCallDepth bounds function-call recursion in lang/interp before a
	// RuntimeError ("Stack overflow.") is raised instead of exhausting the
	// host stack.
	MaxCallDepth int `env:"KLOX_MAX_CALL_DEPTH" envDefault:"1024"`

	// PrintAST mirrors the CLI's --print-ast flag as an environment default;
	// an explicit flag still overrides it.
	PrintAST bool `env:"KLOX_PRINT_AST" envDefault:"false"`

	// Target names the default transpile backend for the compile command.
	// Only "cpp" is implemented; this exists for forward compatibility with
	// additional native backends, and is validated but never branched on
	// beyond that.
	Target string `env:"KLOX_TARGET" envDefault:"cpp"`
}

// Load reads Config from the process environment, applying the defaults
// above to any variable that is unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
