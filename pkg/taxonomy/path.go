// Package taxonomy builds the hierarchical group structure the directory
// uses to classify network devices. Groups are identified by a Path: an
// ordered sequence of segments under one of four fixed root categories
// (Location, Device Type, Device Role, Tenant) joined by a fixed
// delimiter, e.g. "Location#All Locations#Site01".
package taxonomy

import (
	"sort"
	"strings"
)

// Delimiter joins path segments. It matches the directory's group
// naming convention and never appears inside a segment (Normalize
// leaves it alone because source names cannot legally contain it).
const Delimiter = "#"

// Root category base paths. Every group path starts with one of these.
var (
	LocationBase   = Path("Location" + Delimiter + "All Locations")
	DeviceTypeBase = Path("Device Type" + Delimiter + "All Device Types")
	DeviceRoleBase = Path("Device Role" + Delimiter + "Device Role")
	TenantBase     = Path("Tenant" + Delimiter + "Tenant")
)

// GeneralVMSegment is the fixed Device Type node all virtual machines
// resolve to; the inventory system has no model concept for VMs.
const GeneralVMSegment = "General VM"

// Path uniquely identifies one taxonomy node. Two paths are equal iff
// their segment sequences are equal, which with a fixed delimiter is
// plain string equality.
type Path string

// Join appends normalized segments to the path. Empty segments are
// skipped so optional attributes (rack, tenant group) can be passed
// through unconditionally.
func (p Path) Join(segments ...string) Path {
	out := string(p)
	for _, seg := range segments {
		seg = Normalize(seg)
		if seg == "" {
			continue
		}
		out += Delimiter + seg
	}
	return Path(out)
}

// Segments returns the ordered segment sequence of the path.
func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), Delimiter)
}

// Root returns the first segment, the root category name.
func (p Path) Root() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

// Leaf returns the last segment of the path.
func (p Path) Leaf() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// String implements fmt.Stringer.
func (p Path) String() string { return string(p) }

// Set is an unordered collection of unique paths.
type Set map[Path]struct{}

// NewSet returns a Set containing the given paths.
func NewSet(paths ...Path) Set {
	s := make(Set, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts a path into the set.
func (s Set) Add(p Path) { s[p] = struct{}{} }

// Has reports whether the set contains the path.
func (s Set) Has(p Path) bool {
	_, ok := s[p]
	return ok
}

// Union merges another set into this one.
func (s Set) Union(other Set) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Sorted returns the paths in lexical order. Diff and sync reports use
// this so output is deterministic regardless of input ordering.
func (s Set) Sorted() []Path {
	out := make([]Path, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
