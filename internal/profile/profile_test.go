package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfileIsValid(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Aarav Mehta", p.Name)
	assert.Equal(t, "aarav", p.FirstName())
	assert.GreaterOrEqual(t, len(p.Skills.Programming), 4)
	assert.NotEmpty(t, p.Projects)
	assert.Equal(t, "Smart Helmet", p.Projects[0].Name)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Aarav Mehta", p.Name)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Jane Doe
skills:
  programming:
    - {name: Go, level: 90}
projects:
  - name: Thing
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jane", p.FirstName())
	assert.Equal(t, []string{"Go"}, SkillNames(p.Skills.Programming, 4))
}

func TestParseRejectsInvalidProfiles(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing name", "skills: {programming: [{name: Go, level: 1}]}", "name is required"},
		{"no programming skills", "name: X", "programming skill"},
		{"level out of range", "name: X\nskills: {programming: [{name: Go, level: 140}]}", "outside 0-100"},
		{"duplicate project", "name: X\nskills: {programming: [{name: Go, level: 1}]}\nprojects: [{name: A}, {name: a}]", "duplicate project"},
		{"malformed", "name: [", "parsing profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExperienceLookups(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	ibm, ok := p.ExperienceAt("ibm")
	require.True(t, ok)
	assert.Equal(t, "Machine Learning Intern", ibm.Role)

	amb, ok := p.ExperienceAs("innovation ambassador")
	require.True(t, ok)
	assert.Contains(t, amb.Organization, "Innovation Council")

	_, ok = p.ExperienceAt("acme")
	assert.False(t, ok)
}

func TestSkillNames(t *testing.T) {
	list := []Skill{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	assert.Equal(t, []string{"a", "b"}, SkillNames(list, 2))
	assert.Equal(t, []string{"a", "b", "c"}, SkillNames(list, 10))
	assert.Equal(t, []string{"a", "b", "c"}, SkillNames(list, -1))
	assert.Empty(t, SkillNames(nil, 3))
}
