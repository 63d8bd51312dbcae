package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the mpcalc binary and checks its output and exit codes.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binName := "mpcalc"
	if runtime.GOOS == "windows" {
		binName = "mpcalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/mpcalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build mpcalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		env      []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:    "Basic Calculation",
			args:    []string{"1 2 + 3 +"},
			wantOut: "= 6",
		},
		{
			name:    "Quiet Mode",
			args:    []string{"-q", "2 sqrt"},
			wantOut: "1.4142135623730951",
		},
		{
			name:    "High Precision",
			args:    []string{"-q", "-prec", "200", "2 sqrt"},
			wantOut: "1.41421356237309504880168872420969807856967187537694",
		},
		{
			name:    "Complex Mode",
			args:    []string{"-q", "-complex", "-4 sqrt"},
			wantOut: "(0,2)",
		},
		{
			name:    "Several Expressions",
			args:    []string{"-jobs", "2", "1 2 +", "3.75 modf"},
			wantOut: "[2] 3.75 modf",
		},
		{
			name:    "Metrics",
			args:    []string{"-metrics", "1 2 + 3 *"},
			wantOut: "return_steal",
		},
		{
			name:    "Environment Precision",
			args:    []string{"-q", "1 3 /"},
			env:     []string{"MPCALC_PREC=10"},
			wantOut: "0.33349609375",
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: "usage",
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: "mpcalc",
		},
		{
			name:     "Domain Error",
			args:     []string{"-1 sqrt"},
			wantOut:  "domain error",
			wantCode: 3,
		},
		{
			name:     "Unknown Token",
			args:     []string{"1 foo"},
			wantOut:  "foo",
			wantCode: 1,
		},
		{
			name:     "Invalid Precision",
			args:     []string{"-prec", "1", "1"},
			wantOut:  "invalid precision",
			wantCode: 4,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"-prec", "1000000", "-timeout", "1ms", "2 sqrt 3 sqrt *"},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("running mpcalc: %v", err)
				}
				code = exitErr.ExitCode()
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
