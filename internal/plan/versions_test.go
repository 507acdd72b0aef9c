package plan

import (
	"testing"

	"versioned-generator/internal/attrs"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name   string
		major  int
		level  Level
		serial int
	}{
		{"v1", 1, LevelStable, 0},
		{"v2", 2, LevelStable, 0},
		{"v1alpha1", 1, LevelAlpha, 1},
		{"v1alpha12", 1, LevelAlpha, 12},
		{"v1beta2", 1, LevelBeta, 2},
		{"v10", 10, LevelStable, 0},
	}

	for _, tt := range tests {
		v, err := ParseVersion(attrs.VersionDef{Name: tt.name})
		if err != nil {
			t.Fatalf("ParseVersion(%q) failed: %v", tt.name, err)
		}

		if v.Major != tt.major || v.Level != tt.level || v.Serial != tt.serial {
			t.Errorf("ParseVersion(%q) = %d/%s/%d, want %d/%s/%d",
				tt.name, v.Major, v.Level, v.Serial, tt.major, tt.level, tt.serial)
		}
	}
}

func TestParseVersionMalformed(t *testing.T) {
	for _, name := range []string{"", "1", "v", "v0", "va", "v1alpha", "v1gamma1", "V1", "v1alpha0", "2024-01-01"} {
		if _, err := ParseVersion(attrs.VersionDef{Name: name}); err == nil {
			t.Errorf("ParseVersion(%q) should fail", name)
		}
	}
}

func TestVersionOrdering(t *testing.T) {
	ordered := []string{"v1alpha1", "v1alpha2", "v1beta1", "v1beta2", "v1", "v2alpha1", "v2", "v10"}

	for i := 0; i+1 < len(ordered); i++ {
		a, err := ParseVersion(attrs.VersionDef{Name: ordered[i]})
		if err != nil {
			t.Fatal(err)
		}

		b, err := ParseVersion(attrs.VersionDef{Name: ordered[i+1]})
		if err != nil {
			t.Fatal(err)
		}

		if a.Compare(b) >= 0 {
			t.Errorf("expected %s < %s", a, b)
		}

		if b.Compare(a) <= 0 {
			t.Errorf("expected %s > %s", b, a)
		}

		if a.Compare(a) != 0 {
			t.Errorf("expected %s == %s", a, a)
		}
	}
}

func TestRegisterVersionsSortsAscending(t *testing.T) {
	defs := []attrs.VersionDef{
		{Name: "v2"},
		{Name: "v1alpha1"},
		{Name: "v1", Deprecated: true},
		{Name: "v1beta1"},
	}

	versions, diags := RegisterVersions("Foo", defs)
	if diags.HasErrors() {
		t.Fatalf("RegisterVersions failed: %v", diags.Error())
	}

	want := []string{"v1alpha1", "v1beta1", "v1", "v2"}
	if len(versions) != len(want) {
		t.Fatalf("expected %d versions, got %d", len(want), len(versions))
	}

	for i, name := range want {
		if versions[i].Name != name {
			t.Errorf("versions[%d] = %s, want %s", i, versions[i].Name, name)
		}
	}

	if !versions[2].Deprecated {
		t.Error("expected v1 to keep its deprecation flag")
	}
}

func TestRegisterVersionsDuplicate(t *testing.T) {
	defs := []attrs.VersionDef{{Name: "v1"}, {Name: "v2"}, {Name: "v1"}}

	versions, diags := RegisterVersions("Foo", defs)
	if versions != nil {
		t.Error("expected no versions on duplicate")
	}

	if !diags.HasErrors() {
		t.Fatal("expected a duplicate_version error")
	}

	if diags.Errors[0].Code != "duplicate_version" {
		t.Errorf("unexpected code %q", diags.Errors[0].Code)
	}

	if diags.Errors[0].Subject != "v1" {
		t.Errorf("expected the diagnostic to point at v1, got %q", diags.Errors[0].Subject)
	}
}

func TestRegisterVersionsEmpty(t *testing.T) {
	versions, diags := RegisterVersions("Foo", nil)
	if versions != nil || !diags.HasErrors() {
		t.Error("expected an error for an empty version list")
	}
}

func TestRegisterVersionsMalformed(t *testing.T) {
	_, diags := RegisterVersions("Foo", []attrs.VersionDef{{Name: "v1"}, {Name: "banana"}})
	if !diags.HasErrors() {
		t.Fatal("expected an invalid_version error")
	}

	if diags.Errors[0].Code != "invalid_version" {
		t.Errorf("unexpected code %q", diags.Errors[0].Code)
	}
}
