package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scene-export/internal/host"
	"github.com/Faultbox/scene-export/pkg/formats"
)

const testDump = "../../internal/host/testdata/level.yaml"

func stubPicker(t *testing.T, path string, err error) *int {
	t.Helper()
	calls := 0
	orig := pickFile
	pickFile = func(fileFilter, string) (string, error) {
		calls++
		return path, err
	}
	t.Cleanup(func() { pickFile = orig })
	return &calls
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	globalFlags = GlobalFlags{}
	collisionScale = 0
	resetChanged(rootCmd)

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetChanged clears pflag's Changed marks so one test's flags do not
// leak into the next.
func resetChanged(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) { f.Changed = false }
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetChanged(sub)
	}
}

func TestParseScale(t *testing.T) {
	tests := []struct {
		in      string
		want    float32
		wantErr bool
	}{
		{"1", 1, false},
		{"0.5", 0.5, false},
		{"100", 100, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseScale(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, host.ErrInvalidScale)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputPath(t *testing.T) {
	globalFlags = GlobalFlags{}
	calls := stubPicker(t, "/picked/out.cmsh", nil)

	path, ok, err := outputPath([]string{"dump.yaml", "given.cmsh"}, "", collisionFilter)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "given.cmsh", path)
	assert.Equal(t, 0, *calls)

	path, ok, err = outputPath([]string{"dump.yaml"}, "", collisionFilter)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/picked/out.cmsh", path)
	assert.Equal(t, 1, *calls)

	globalFlags.Pick = true
	defer func() { globalFlags.Pick = false }()
	path, _, err = outputPath([]string{"dump.yaml", "given.cmsh"}, "", collisionFilter)
	require.NoError(t, err)
	assert.Equal(t, "/picked/out.cmsh", path)
}

func TestOutputPath_Cancelled(t *testing.T) {
	globalFlags = GlobalFlags{}
	stubPicker(t, "", dialog.ErrCancelled)

	_, ok, err := outputPath([]string{"dump.yaml"}, "", sceneFilter)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOutputPath_DialogError(t *testing.T) {
	globalFlags = GlobalFlags{}
	stubPicker(t, "", errors.New("no display"))

	_, _, err := outputPath([]string{"dump.yaml"}, "", sceneFilter)
	require.Error(t, err)
}

func TestCollisionCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "level1.cmsh")

	out, err := runCLI(t, "collision", testDump, output, "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Source file: level1.blend\n")
	assert.Contains(t, out, "Base scale: 2\n")
	assert.Contains(t, out, "Vertices: 15\n")
	assert.Contains(t, out, "Triangles: 5\n")
	assert.Contains(t, out, "Collision data successfully written to "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, data, formats.CMSHSize(15, 5))
}

func TestCollisionCommand_MissingCollection(t *testing.T) {
	output := filepath.Join(t.TempDir(), "level1.cmsh")

	_, err := runCLI(t, "collision", "--collection", "nope", testDump, output)
	require.ErrorIs(t, err, host.ErrMissingCollection)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCollisionCommand_BadScale(t *testing.T) {
	_, err := runCLI(t, "collision", testDump, filepath.Join(t.TempDir(), "x.cmsh"), "0")
	require.ErrorIs(t, err, host.ErrInvalidScale)
}

func TestCollisionCommand_ScaleFlag(t *testing.T) {
	_, err := runCLI(t, "collision", "--scale", "0", testDump, filepath.Join(t.TempDir(), "x.cmsh"))
	require.ErrorIs(t, err, host.ErrInvalidScale)

	// The next run without --scale falls back to the configured default.
	output := filepath.Join(t.TempDir(), "level1.cmsh")
	out, err := runCLI(t, "collision", testDump, output)
	require.NoError(t, err)
	assert.Contains(t, out, "Base scale: 1\n")
}

func TestSceneCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "level1.scne")

	out, err := runCLI(t, "scene", testDump, output)
	require.NoError(t, err)
	assert.Contains(t, out, "Objects: 2\n")
	assert.Contains(t, out, "Collision: rom:/level1.cmsh\n")
	assert.Contains(t, out, "Scene successfully written to "+output)

	_, err = os.Stat(output)
	require.NoError(t, err)
}

func TestSceneCommand_PickCancelled(t *testing.T) {
	stubPicker(t, "", dialog.ErrCancelled)

	out, err := runCLI(t, "scene", testDump)
	require.NoError(t, err)
	assert.NotContains(t, out, "successfully written")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sceneexport.yaml")

	out, err := runCLI(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "collision_collection: collision")
}
