package aioconf

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// flagTarget records where a registered flag spelling delivers its value.
type flagTarget struct {
	path []string
	opt  *OptionSpec
}

// ParseCLI extracts a partial value tree from command-line arguments. Every
// CLI spelling across the whole spec tree is registered; arguments that do
// not match a registered spelling are skipped rather than rejected, so
// unrelated flags can pass through untouched.
//
// Supported forms: "--flag value", "--flag=value", and bare boolean flags
// ("--debug" sets true). A boolean flag consumes a following token as its
// value only when that token is a recognized boolean spelling, so
// "--debug serve" leaves "serve" alone.
//
// When more than one spelling of the same option appears, the right-most
// occurrence wins and a warning is logged.
func ParseCLI(spec *ConfigSpec, args []string) (map[string]any, error) {
	registry := buildFlagRegistry(spec)

	result := make(map[string]any)
	// Tracks which spelling last supplied each option, for alias warnings.
	supplied := make(map[string]string)

	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			i++
			continue
		}

		name, inline, hasInline := strings.Cut(arg, "=")
		target, registered := registry[name]
		if !registered {
			i++
			continue
		}

		var raw string
		hasRaw := false
		switch {
		case hasInline:
			raw = inline
			hasRaw = true
			i++
		case target.opt.Kind == KindBool:
			if i+1 < len(args) && isBoolToken(args[i+1]) {
				raw = args[i+1]
				hasRaw = true
				i += 2
			} else {
				i++ // bare flag, implied true
			}
		default:
			if i+1 >= len(args) || isRegisteredFlag(registry, args[i+1]) {
				return nil, &InvalidValueError{
					Path: strings.Join(target.path, "."),
					Kind: target.opt.Kind,
					Err:  fmt.Errorf("flag %s is missing a value", name),
				}
			}
			raw = args[i+1]
			hasRaw = true
			i += 2
		}

		var value any = true
		if hasRaw {
			parsed, err := target.opt.Kind.Parse(raw)
			if err != nil {
				return nil, &InvalidValueError{
					Path: strings.Join(target.path, "."),
					Raw:  raw,
					Kind: target.opt.Kind,
					Err:  err,
				}
			}
			value = parsed
		}

		path := strings.Join(target.path, ".")
		if previous, seen := supplied[path]; seen && previous != name {
			log.Warn().
				Str("option", path).
				Strs("flags", []string{previous, name}).
				Msg("option supplied through multiple flag spellings, right-most wins")
		}
		supplied[path] = name

		setNested(result, target.path, value)
	}

	return result, nil
}

// isRegisteredFlag reports whether the token is a declared flag spelling,
// with or without an inline "=value" part. Negative numbers are not
// registered spellings, so "--offset -5" still reads -5 as a value.
func isRegisteredFlag(registry map[string]flagTarget, token string) bool {
	name, _, _ := strings.Cut(token, "=")
	_, ok := registry[name]
	return ok
}

// buildFlagRegistry maps every declared flag spelling to its option. A
// spelling claimed by two different options keeps the later registration,
// with a warning.
func buildFlagRegistry(spec *ConfigSpec) map[string]flagTarget {
	registry := make(map[string]flagTarget)
	spec.walk(nil, func(path []string, opt *OptionSpec) error {
		for _, spelling := range opt.CLI {
			if prev, taken := registry[spelling]; taken {
				log.Warn().
					Str("flag", spelling).
					Str("option", strings.Join(prev.path, ".")).
					Str("overridden_by", strings.Join(path, ".")).
					Msg("flag spelling registered by multiple options")
			}
			registry[spelling] = flagTarget{path: path, opt: opt}
		}
		return nil
	})
	return registry
}
