package wrapper

import (
	"regexp"
	"strings"
)

// Matches tokens that introduce an environment assignment: a short-option
// cluster containing 'e' (e.g. -e, -ite) or the long form --env, either with
// an inline =value or taking the value from the next token.
var envArgRe = regexp.MustCompile(`^(-\w*e\w*|--env)(=(\S.*))?$`)

// ParseEnvArgs extracts the environment assignments embedded in a runtime
// argument vector. Values split on their first '='; the last occurrence of a
// key wins. Captured values without an '=' contribute nothing.
func ParseEnvArgs(argv []string) map[string]string {
	result := map[string]string{}
	inEnv := false
	for _, arg := range argv {
		if !inEnv {
			m := envArgRe.FindStringSubmatch(arg)
			if m == nil {
				continue
			}
			arg = m[3]
			if arg == "" {
				inEnv = true
				continue
			}
		}
		inEnv = false
		eq := strings.Index(arg, "=")
		if eq < 0 {
			continue
		}
		result[arg[:eq]] = arg[eq+1:]
	}
	return result
}

// HasHostnameArg reports whether the vector already carries a hostname flag:
// the long form, a bare -h, or an 'h' inside a short-option cluster (before
// any inline value).
func HasHostnameArg(argv []string) bool {
	for _, arg := range argv {
		if arg == "-h" {
			return true
		}
		if strings.HasPrefix(arg, "--hostname") {
			return true
		}
		if len(arg) > 1 && arg[0] == '-' && arg[1] != '-' {
			cluster := arg
			if eq := strings.Index(arg, "="); eq >= 0 {
				cluster = arg[:eq]
			}
			if strings.Contains(cluster, "h") {
				return true
			}
		}
	}
	return false
}

// InsertAfterRun returns a copy of argv with arg inserted immediately after
// the first "run" token. Without a "run" token the vector is returned
// unchanged (still a copy).
func InsertAfterRun(argv []string, arg string) []string {
	out := make([]string, len(argv))
	copy(out, argv)
	for i, a := range out {
		if a == "run" {
			rest := make([]string, len(out)-(i+1))
			copy(rest, out[i+1:])
			out = append(out[:i+1], arg)
			out = append(out, rest...)
			break
		}
	}
	return out
}
