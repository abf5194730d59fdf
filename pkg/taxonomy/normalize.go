package taxonomy

import "strings"

// normalizer replaces characters the directory rejects in group and
// device names. "/" becomes "-"; parentheses are stripped.
var normalizer = strings.NewReplacer(
	"/", "-",
	"(", "",
	")", "",
)

// Normalize maps a source-system name to a directory-legal name. It is
// pure, total, and idempotent: every input yields a result, the same
// input always yields the same output, and normalizing twice is a
// no-op. Source and directory names compare equal after normalization.
func Normalize(name string) string {
	return normalizer.Replace(name)
}
