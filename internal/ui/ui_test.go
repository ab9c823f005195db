package ui

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(os.Stdout, os.Stderr)
		SetVerbose(false)
		SetJSONOutput(false)
		SetNonInteractive(false)
	})
	return &out, &errOut
}

func TestLevelsAndStreams(t *testing.T) {
	out, errOut := captureOutput(t)

	Info("Installing required software...")
	Success("Spring project setup complete.")
	Warning("GlassFish is not installed")
	Error("deploy failed: %s", "boom")
	Debug("hidden")

	if !strings.Contains(out.String(), "INFO: Installing required software...") {
		t.Errorf("info missing: %q", out.String())
	}
	if !strings.Contains(out.String(), "SUCCESS: Spring project setup complete.") {
		t.Errorf("success missing: %q", out.String())
	}
	if !strings.Contains(out.String(), "WARN: GlassFish is not installed") {
		t.Errorf("warning missing: %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("debug shown without verbose: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "ERROR: deploy failed: boom") {
		t.Errorf("error must go to the error stream: %q", errOut.String())
	}
	if strings.Contains(out.String(), "\033[") {
		t.Errorf("no ANSI codes expected for a buffer: %q", out.String())
	}
}

func TestVerboseShowsDebug(t *testing.T) {
	out, _ := captureOutput(t)
	SetVerbose(true)

	Debug("probe %s", "java -version")

	if !strings.Contains(out.String(), "DEBUG: probe java -version") {
		t.Errorf("debug missing: %q", out.String())
	}
}

func TestStepAndPlain(t *testing.T) {
	out, _ := captureOutput(t)

	Step(2, 4, "Generating project %s", "demo")
	Plain("You can build the project by running: mvn clean install")

	want := "  [2/4] Generating project demo\nYou can build the project by running: mvn clean install\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestJSONOutput(t *testing.T) {
	out, _ := captureOutput(t)
	SetJSONOutput(true)

	Success("done")

	var msg Message
	if err := json.Unmarshal(out.Bytes(), &msg); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if msg.Level != LevelSuccess || msg.Text != "done" {
		t.Errorf("message = %+v", msg)
	}
}

func TestPrompterReadsSequentialAnswers(t *testing.T) {
	out, _ := captureOutput(t)
	p := NewPrompter(strings.NewReader("demo\n  com.example  \n"))

	name, err := p.Ask("Enter the project name:")
	if err != nil {
		t.Fatal(err)
	}
	pkg, err := p.Ask("Enter the base package name (e.g., com.example):")
	if err != nil {
		t.Fatal(err)
	}

	if name != "demo" || pkg != "com.example" {
		t.Errorf("answers = %q, %q", name, pkg)
	}
	if !strings.Contains(out.String(), "Enter the project name:") {
		t.Errorf("label not printed: %q", out.String())
	}
}

func TestPrompterLastLineWithoutNewline(t *testing.T) {
	captureOutput(t)
	p := NewPrompter(strings.NewReader("demo"))

	got, err := p.Ask("name:")
	if err != nil || got != "demo" {
		t.Errorf("Ask() = %q, %v", got, err)
	}

	if _, err := p.Ask("again:"); err != ErrNoInput {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}

func TestNonInteractiveNeverReads(t *testing.T) {
	out, _ := captureOutput(t)
	SetNonInteractive(true)

	p := NewPrompter(strings.NewReader("demo\n"))
	if _, err := p.Ask("Enter the project name:"); err != ErrNoInput {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no prompt in non-interactive mode, got %q", out.String())
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Errorf("buffer is not a terminal")
	}
}
