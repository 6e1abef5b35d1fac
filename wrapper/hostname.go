package wrapper

import (
	"regexp"
	"strings"
)

// Hostnames may only contain alphanumerics and dashes and must fit a DNS
// label.
const MaxHostnameLength = 63

var disallowedHostnameRe = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// Sanitize collapses every run of disallowed characters to a single dash and
// truncates to the DNS label limit. Idempotent.
func Sanitize(name string) string {
	name = disallowedHostnameRe.ReplaceAllString(name, "-")
	if len(name) > MaxHostnameLength {
		name = name[:MaxHostnameLength]
	}
	return name
}

// GenerateHostname derives a container hostname from the node's fqdn and the
// scheduler task id: first label of the fqdn, a dash, and the last
// dot-separated segment of the task id, sanitized.
func GenerateHostname(fqdn, taskId string) string {
	host := fqdn
	if dot := strings.Index(fqdn, "."); dot >= 0 {
		host = fqdn[:dot]
	}
	task := taskId
	if dot := strings.LastIndex(taskId, "."); dot >= 0 {
		task = taskId[dot+1:]
	}
	return Sanitize(host + "-" + task)
}
