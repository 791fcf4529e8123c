// Package aioconf resolves layered configuration from a declarative option
// spec: command-line arguments, environment variables, a configuration file
// (JSON, YAML, INI, or TOML), and declared defaults, merged in that strict
// priority order.
//
// A spec declares every option up front (name, kind, default, environment
// binding, CLI flag spellings, required flag), optionally organized into
// named nested sections. Each source is extracted independently into a
// partial value tree shaped like the spec; the merge folds the trees per
// leaf, so one source can supply some options inside a section while
// siblings fall through to another.
//
// Quick start:
//
//	spec := aioconf.NewSpec().Add(
//	    aioconf.Option("debug", aioconf.KindBool).WithDefault(false).
//	        WithEnv("APP_DEBUG").WithCLI("--debug"),
//	)
//	spec.Section("database").Add(
//	    aioconf.Option("host", aioconf.KindString).WithDefault("localhost").
//	        WithEnv("DB_HOST").WithCLI("--db-host"),
//	    aioconf.Option("port", aioconf.KindInt).WithDefault(3306).
//	        WithEnv("DB_PORT").WithCLI("--db-port", "-p"),
//	)
//
//	cfg, err := aioconf.NewBuilder().
//	    WithSpec(spec).
//	    WithFile("config.yaml").
//	    Build()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("config")
//	}
//
//	port, _ := cfg.Int64("database.port")
//
// Precedence (highest to lowest):
//  1. Command-line arguments (--db-port 9090)
//  2. Environment variables (DB_PORT=9090)
//  3. Configuration file (config.yaml, config.json, config.ini, config.toml)
//  4. Defaults declared in the spec
//
// Specs serialize to and from a JSON document (see ParseSpec), and resolved
// values export to INI (see WriteINI). The environment is always an explicit
// map parameter rather than an implicit process read, so resolution is
// deterministic and testable.
//
// Absent sources are not errors: a missing file, an unset variable, or an
// unpassed flag simply contribute nothing. Malformed-but-present values fail
// loudly with InvalidValueError or FileFormatError.
package aioconf
