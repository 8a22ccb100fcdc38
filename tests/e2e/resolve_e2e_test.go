package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolchain-resolver/tests/testutil"
)

func runCLI(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "./cmd/toolchain-resolver"}, args...)...)
	cmd.Dir = testutil.RepoRoot(t)
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), 0
	}
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), string(out))
	return string(out), exitErr.ExitCode()
}

func TestResolveCommandE2E(t *testing.T) {
	outDir := t.TempDir()
	out, code := runCLI(t, "resolve",
		"--declarations", "fixtures",
		"--platform", "darwin-x86",
		"--feature", "openexr",
		"--output", outDir,
		"--format", "json,env,scons",
	)
	require.Equal(t, 0, code, out)

	require.FileExists(t, filepath.Join(outDir, "darwin-x86-single-release.json"))
	require.FileExists(t, filepath.Join(outDir, "darwin-x86-single-release.env"))
	require.FileExists(t, filepath.Join(outDir, "darwin-x86-single-release.py"))

	out, code = runCLI(t, "inspect", filepath.Join(outDir, "darwin-x86-single-release.env"))
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "library_names: m, pthread, gomp, Half, IlmImf, Iex, Imath, z")
}

func TestMatrixCommandE2E(t *testing.T) {
	outDir := t.TempDir()
	out, code := runCLI(t, "matrix",
		"--declarations", "fixtures",
		"--filter", "os == 'linux' && precision == 'double'",
		"--output", outDir,
		"--format", "scons",
	)
	require.Equal(t, 0, code, out)

	manifest, err := os.ReadFile(filepath.Join(outDir, "matrix.manifest"))
	require.NoError(t, err)
	lines := strings.Split(string(manifest), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "linux-arm64,double,debug,"))
}

func TestErrorReportingE2E(t *testing.T) {
	tests := []struct {
		name string
		args []string
		line string
		code int
	}{
		{
			name: "unknown platform",
			args: []string{"resolve", "--declarations", "fixtures", "--platform", "plan9-mips"},
			line: "error_kind=UnknownPlatformError key=plan9-mips field=platform_id",
			code: 5,
		},
		{
			name: "unrequested optional feature",
			args: []string{"resolve", "--declarations", "fixtures", "--platform", "win-x86", "--feature", "openexr"},
			line: "error_kind=UnrequestedOptionalFeatureError key=openexr field=features",
			code: 2,
		},
		{
			name: "unknown toggle",
			args: []string{"resolve", "--declarations", "fixtures", "--platform", "linux-x86_64", "--toggle", "lto"},
			line: "error_kind=UnknownOptionalFlagError key=lto field=toggles",
			code: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := runCLI(t, tt.args...)
			assert.Equal(t, tt.code, code, out)
			assert.Contains(t, out, tt.line)
		})
	}
}
