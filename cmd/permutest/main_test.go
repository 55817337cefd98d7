package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	toolerrors "github.com/permutest/permutest/pkgs/errors"
)

const doublesSpec = `title doubles_example;
let a = A1 or A2 or A3;
let b = B10 or B20;
when result = {
	return someCode(a, b)
}
then {
	_ = result
}
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.perm")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateToStdout(t *testing.T) {
	spec := writeSpec(t, doublesSpec)

	out, err := runCommand(t, "generate", spec)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "package generated") {
		t.Error("output is missing the package clause")
	}
	if got := strings.Count(out, "func Test_doubles_example_"); got != 6 {
		t.Errorf("output has %d test functions, want 6", got)
	}
}

func TestGenerateToFile(t *testing.T) {
	spec := writeSpec(t, doublesSpec)
	output := filepath.Join(t.TempDir(), "doubles_test.go")

	if _, err := runCommand(t, "generate", spec, "-o", output, "--package", "mypkg"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "package mypkg") {
		t.Error("output file is missing the configured package clause")
	}
}

func TestGenerateMissingInput(t *testing.T) {
	_, err := runCommand(t, "generate", filepath.Join(t.TempDir(), "nope.perm"))
	if err == nil {
		t.Fatal("generate succeeded on a missing file")
	}
	if got := toolerrors.ExitCode(err); got != toolerrors.ExitIO {
		t.Errorf("ExitCode() = %d, want %d", got, toolerrors.ExitIO)
	}
}

func TestGenerateParseError(t *testing.T) {
	spec := writeSpec(t, "title broken\n")

	_, err := runCommand(t, "generate", spec)
	if err == nil {
		t.Fatal("generate succeeded on invalid input")
	}
	if got := toolerrors.ExitCode(err); got != toolerrors.ExitParse {
		t.Errorf("ExitCode() = %d, want %d", got, toolerrors.ExitParse)
	}
}

func TestGenerateWatchRequiresOutput(t *testing.T) {
	spec := writeSpec(t, doublesSpec)

	_, err := runCommand(t, "generate", spec, "--watch")
	if err == nil {
		t.Fatal("generate --watch succeeded without --output")
	}
	if got := toolerrors.ExitCode(err); got != toolerrors.ExitUsage {
		t.Errorf("ExitCode() = %d, want %d", got, toolerrors.ExitUsage)
	}
}

func TestCheckReportsUnitCounts(t *testing.T) {
	spec := writeSpec(t, doublesSpec)

	out, err := runCommand(t, "check", spec)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "doubles_example expands to 6 test cases") {
		t.Errorf("check output = %q", out)
	}
}

func TestCheckNameCollision(t *testing.T) {
	spec := writeSpec(t, `title collide;
let v = a.b or a-b;
when r = { return v }
then { _ = r }
`)

	_, err := runCommand(t, "check", spec)
	if err == nil {
		t.Fatal("check succeeded on colliding value names")
	}
	if got := toolerrors.ExitCode(err); got != toolerrors.ExitGeneration {
		t.Errorf("ExitCode() = %d, want %d", got, toolerrors.ExitGeneration)
	}
}
