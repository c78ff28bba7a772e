package version

import (
	"strconv"
	"strings"
)

// semver is a parsed semantic version. Build metadata is ignored.
type semver struct {
	major, minor, patch int
	prerelease          string
}

// parseSemver parses "v1.2.3", "1.2.3", or "v1.2.3-beta.1". ok=false for
// anything else.
func parseSemver(s string) (semver, bool) {
	s = strings.TrimPrefix(s, "v")
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}

	var v semver
	if i := strings.IndexByte(s, '-'); i >= 0 {
		v.prerelease = s[i+1:]
		s = s[:i]
		if v.prerelease == "" {
			return semver{}, false
		}
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return semver{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return semver{}, false
		}
		nums[i] = n
	}
	v.major, v.minor, v.patch = nums[0], nums[1], nums[2]
	return v, true
}

// isNewer reports whether candidate is a strictly newer release than
// current. Unparseable versions never trigger an update.
func isNewer(candidate, current string) bool {
	a, ok := parseSemver(candidate)
	if !ok {
		return false
	}
	b, ok := parseSemver(current)
	if !ok {
		return false
	}
	return compare(a, b) > 0
}

func compare(a, b semver) int {
	if a.major != b.major {
		return a.major - b.major
	}
	if a.minor != b.minor {
		return a.minor - b.minor
	}
	if a.patch != b.patch {
		return a.patch - b.patch
	}
	// A release outranks any prerelease of the same core version.
	switch {
	case a.prerelease == "" && b.prerelease != "":
		return 1
	case a.prerelease != "" && b.prerelease == "":
		return -1
	default:
		return strings.Compare(a.prerelease, b.prerelease)
	}
}
