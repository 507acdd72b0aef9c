package plan

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"versioned-generator/internal/attrs"
	"versioned-generator/internal/common"
	"versioned-generator/internal/diagnostic"
)

// Level orders the stability stages within a major version.
type Level int

const (
	LevelAlpha Level = iota
	LevelBeta
	LevelStable
)

// String returns a human-readable level name.
func (l Level) String() string {
	switch l {
	case LevelAlpha:
		return "alpha"
	case LevelBeta:
		return "beta"
	case LevelStable:
		return "stable"
	default:
		return common.UnknownStr
	}
}

// Version is one declared point in a container's evolution. Versions are
// totally ordered: by major, then level (alpha < beta < stable), then the
// level's sequence number.
type Version struct {
	// Name is the declared identifier, e.g. "v1alpha2" or "v3".
	Name string
	// Major version number.
	Major int
	// Level is the stability stage.
	Level Level
	// Serial is the alpha/beta sequence number; 0 for stable versions.
	Serial int
	// Deprecated marks the version as deprecated (pass-through metadata).
	Deprecated bool
	// SkipConversion suppresses the conversion routine into this version.
	SkipConversion bool
	// Doc is forwarded to emitters.
	Doc string
}

var versionPattern = regexp.MustCompile(`^v([1-9][0-9]*)(?:(alpha|beta)([1-9][0-9]*))?$`)

// ParseVersion parses a version declaration into an ordered Version value.
// Names must follow the v<major>[alpha<n>|beta<n>] convention.
func ParseVersion(def attrs.VersionDef) (Version, error) {
	m := versionPattern.FindStringSubmatch(def.Name)
	if m == nil {
		return Version{}, fmt.Errorf("malformed version name %q", def.Name)
	}

	v := Version{
		Name:           def.Name,
		Level:          LevelStable,
		Deprecated:     def.Deprecated,
		SkipConversion: def.SkipConversion,
		Doc:            def.Doc,
	}

	// The pattern guarantees the numeric groups parse.
	v.Major, _ = strconv.Atoi(m[1])

	switch m[2] {
	case "alpha":
		v.Level = LevelAlpha
	case "beta":
		v.Level = LevelBeta
	}

	if m[3] != "" {
		v.Serial, _ = strconv.Atoi(m[3])
	}

	return v, nil
}

// Compare returns -1, 0 or +1 as v orders before, equal to or after o.
func (v Version) Compare(o Version) int {
	if c := cmpInt(v.Major, o.Major); c != 0 {
		return c
	}

	if c := cmpInt(int(v.Level), int(o.Level)); c != 0 {
		return c
	}

	return cmpInt(v.Serial, o.Serial)
}

// String returns the declared version name.
func (v Version) String() string {
	return v.Name
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// RegisterVersions parses, deduplicates and sorts the declared versions of
// a container into ascending order. Every downstream step walks the result
// oldest to newest, so the ordering established here is load-bearing.
func RegisterVersions(container string, defs []attrs.VersionDef) ([]Version, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	if common.IsEmpty(defs) {
		diags.AddError("missing_versions", "container declares no versions", container, "")
		return nil, diags
	}

	seen := map[string]struct{}{}
	versions := make([]Version, 0, len(defs))

	for _, def := range defs {
		if _, ok := seen[def.Name]; ok {
			diags.AddError("duplicate_version",
				fmt.Sprintf("version %q declared more than once", def.Name),
				container, def.Name)

			continue
		}

		seen[def.Name] = struct{}{}

		v, err := ParseVersion(def)
		if err != nil {
			diags.AddError("invalid_version", err.Error(), container, def.Name)
			continue
		}

		versions = append(versions, v)
	}

	if diags.HasErrors() {
		return nil, diags
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})

	return versions, diags
}

// findVersion returns the index of the named version, or -1.
func findVersion(versions []Version, name string) int {
	for i := range versions {
		if versions[i].Name == name {
			return i
		}
	}

	return -1
}
