package aioconf

// Merge folds the partial trees from the three external sources and the
// spec's defaults into one resolved value tree. For every option, the first
// source containing an entry for its path wins, in the fixed order CLI,
// environment, file, default.
//
// This is a strict per-leaf override: presence alone triggers it, never the
// value, so a CLI-supplied false still beats an environment true. Sections
// merge key-wise and recursively, which means one source can supply some
// options inside a section while its siblings resolve from other sources.
//
// Merge assumes the spec has passed Validate; it does not re-check it.
func Merge(spec *ConfigSpec, cli, env, file map[string]any) map[string]any {
	resolved := make(map[string]any, len(spec.Options)+len(spec.Sections))

	for _, opt := range spec.Options {
		if value, ok := cli[opt.Name]; ok {
			resolved[opt.Name] = value
			continue
		}
		if value, ok := env[opt.Name]; ok {
			resolved[opt.Name] = value
			continue
		}
		if value, ok := file[opt.Name]; ok {
			resolved[opt.Name] = value
			continue
		}
		resolved[opt.Name] = defaultValue(opt)
	}

	for _, name := range spec.sectionNames() {
		resolved[name] = Merge(
			spec.Sections[name],
			childMap(cli, name),
			childMap(env, name),
			childMap(file, name),
		)
	}

	return resolved
}

// defaultValue normalizes a declared default to the option's canonical
// scalar type. Defaults are the spec author's literals, not operator input,
// so an uncoercible default is kept as declared rather than rejected here.
func defaultValue(opt *OptionSpec) any {
	if opt.Default == nil {
		return nil
	}
	if coerced, err := opt.Kind.Coerce(opt.Default); err == nil {
		return coerced
	}
	return opt.Default
}
