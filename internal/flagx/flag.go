// Package flagx helps split flag parsing across independent components.
// Each component filters os.Args down to the flags it owns before handing
// them to its own flag.FlagSet, so unknown flags never abort the parse.
package flagx

import "strings"

// FilterArgs returns only the arguments belonging to the allowed flags.
// Both "-f value" and "-f=value" (and the double-dash forms) are kept.
func FilterArgs(args []string, allowed []string) []string {
	want := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		want[f] = struct{}{}
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := want[name]; ok {
				kept = append(kept, arg)
			}
			continue
		}

		if _, ok := want[arg]; ok {
			kept = append(kept, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				kept = append(kept, args[i+1])
				i++
			}
		}
	}
	return kept
}

// ConfigFileFlag extracts the value of the -c/-config flag from args, or ""
// when absent. It is deliberately parsed by hand: the config file has to be
// known before any FlagSet is built from it.
func ConfigFileFlag(args []string) string {
	filtered := FilterArgs(args, []string{"-c", "-config", "--config"})
	for i := 0; i < len(filtered); i++ {
		arg := filtered[i]
		if name, value, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(name, "-") {
			return value
		}
		if i+1 < len(filtered) {
			return filtered[i+1]
		}
	}
	return ""
}
