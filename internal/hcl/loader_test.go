package hcl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/cleangrid/internal/config"
	"github.com/specialistvlad/cleangrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FullScenario(t *testing.T) {
	path := testutil.WriteScenario(t, `
scenario "small" {
  width            = 2
  height           = 2
  agents           = 1
  dirty_percentage = 1.0
  max_time         = 1000
  seed             = 7
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Scenarios, 1)

	s := model.Scenarios[0]
	assert.Equal(t, "small", s.Name)
	assert.Equal(t, 2, s.Width)
	assert.Equal(t, 2, s.Height)
	assert.Equal(t, 1, s.Agents)
	assert.Equal(t, 1.0, s.DirtyPercentage)
	assert.Equal(t, 1000, s.MaxTime)
	require.NotNil(t, s.Seed)
	assert.Equal(t, int64(7), *s.Seed)
	assert.Equal(t, path, s.Source)
}

func TestLoad_DefaultsAndExpressions(t *testing.T) {
	path := testutil.WriteScenario(t, `
scenario "wide" {
  width    = defaults.width * 2
  max_time = 10 + 5
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Scenarios, 1)

	s := model.Scenarios[0]
	assert.Equal(t, config.DefaultWidth*2, s.Width)
	assert.Equal(t, config.DefaultHeight, s.Height)
	assert.Equal(t, config.DefaultAgents, s.Agents)
	assert.Equal(t, config.DefaultDirtyPercentage, s.DirtyPercentage)
	assert.Equal(t, 15, s.MaxTime)
	assert.Nil(t, s.Seed)
}

func TestLoad_StringNumbersAreConverted(t *testing.T) {
	path := testutil.WriteScenario(t, `
scenario "quoted" {
  agents = "3"
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, model.Scenarios[0].Agents)
}

func TestLoad_Directory(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"rooms/a.hcl":        `scenario "a" { width = 3 }`,
		"rooms/nested/b.hcl": `scenario "b" { width = 4 }`,
		"rooms/notes.txt":    `not a scenario`,
	})

	model, err := NewLoader().Load(context.Background(), filepath.Join(root, "rooms"))
	require.NoError(t, err)
	require.Len(t, model.Scenarios, 2)

	a, ok := model.Find("a")
	require.True(t, ok)
	assert.Equal(t, 3, a.Width)
	b, ok := model.Find("b")
	require.True(t, ok)
	assert.Equal(t, 4, b.Width)
}

func TestLoad_SamePathTwiceIsDeduplicated(t *testing.T) {
	path := testutil.WriteScenario(t, `scenario "once" {}`)

	model, err := NewLoader().Load(context.Background(), path, path)
	require.NoError(t, err)
	assert.Len(t, model.Scenarios, 1)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		hcl    string
		errMsg string
	}{
		{
			name:   "syntax error",
			hcl:    `scenario "broken" {`,
			errMsg: "failed to parse HCL file",
		},
		{
			name:   "unknown block",
			hcl:    `room "x" {}`,
			errMsg: "failed to decode HCL file",
		},
		{
			name:   "unknown attribute",
			hcl:    `scenario "x" { colour = "red" }`,
			errMsg: `unsupported attribute "colour"`,
		},
		{
			name:   "non numeric value",
			hcl:    `scenario "x" { width = "wide" }`,
			errMsg: "expected a number",
		},
		{
			name:   "fractional integer",
			hcl:    `scenario "x" { agents = 1.5 }`,
			errMsg: `attribute "agents"`,
		},
		{
			name:   "null value",
			hcl:    `scenario "x" { width = null }`,
			errMsg: "must not be null",
		},
		{
			name:   "unknown variable",
			hcl:    `scenario "x" { width = var.width }`,
			errMsg: `attribute "width"`,
		},
		{
			name:   "out of range",
			hcl:    `scenario "x" { dirty_percentage = 1.5 }`,
			errMsg: "dirty_percentage must be within",
		},
		{
			name: "duplicate names",
			hcl: `
scenario "x" {}
scenario "x" {}
`,
			errMsg: "declared twice",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := testutil.WriteScenario(t, tc.hcl)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find scenario files")
}

func TestLoad_OutOfRangeIsInvalidScenario(t *testing.T) {
	path := testutil.WriteScenario(t, `scenario "x" { width = 0 }`)
	_, err := NewLoader().Load(context.Background(), path)
	require.ErrorIs(t, err, config.ErrInvalidScenario)
}
