package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	story2pdf "github.com/alnah/go-story2pdf"
)

// testEnv returns an Environment capturing output in buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	loader, _ := story2pdf.NewAssetLoader("")
	env := &Environment{
		Stdout:      &stdout,
		Stderr:      &stderr,
		AssetLoader: loader,
	}
	return env, &stdout, &stderr
}

func TestRunMain(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints usage", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		if code := runMain(nil, env); code != ExitUsage {
			t.Errorf("runMain() = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Errorf("stderr = %q, want usage text", stderr.String())
		}
	})

	t.Run("version command", func(t *testing.T) {
		t.Parallel()

		for _, arg := range []string{"version", "--version"} {
			env, stdout, _ := testEnv()
			if code := runMain([]string{arg}, env); code != ExitSuccess {
				t.Errorf("runMain(%q) = %d, want %d", arg, code, ExitSuccess)
			}
			if !strings.Contains(stdout.String(), "story2pdf") {
				t.Errorf("stdout = %q, want version line", stdout.String())
			}
		}
	})

	t.Run("help command", func(t *testing.T) {
		t.Parallel()

		for _, arg := range []string{"help", "-h", "--help"} {
			env, stdout, _ := testEnv()
			if code := runMain([]string{arg}, env); code != ExitSuccess {
				t.Errorf("runMain(%q) = %d, want %d", arg, code, ExitSuccess)
			}
			if !strings.Contains(stdout.String(), "convert") {
				t.Errorf("stdout = %q, want command list", stdout.String())
			}
		}
	})

	t.Run("help with command topic", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := runMain([]string{"help", "convert"}, env); code != ExitSuccess {
			t.Errorf("runMain(help convert) = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(stdout.String(), "--page-size") {
			t.Errorf("stdout = %q, want convert flags", stdout.String())
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		if code := runMain([]string{"frobnicate"}, env); code != ExitUsage {
			t.Errorf("runMain(frobnicate) = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("convert with bad flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		if code := runMain([]string{"convert", "--no-such-flag"}, env); code != ExitUsage {
			t.Errorf("runMain() = %d, want %d", code, ExitUsage)
		}
	})
}

func TestRunTermsCmd(t *testing.T) {
	t.Parallel()

	const story = `{
  "title": "T",
  "author": "A",
  "chapters": [
    {
      "chapter_number": 1,
      "chapter_title": "Into the Forest",
      "content": "The luminous meadow shimmered.",
      "terminology": {"luminous": "giving off light"}
    },
    {"chapter_number": 2, "chapter_title": "Quiet", "content": "The fox ran."}
  ]
}`

	writeStory := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "story.json")
		if err := os.WriteFile(path, []byte(story), 0o644); err != nil {
			t.Fatalf("writing story: %v", err)
		}
		return path
	}

	t.Run("lists candidates with definitions", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := runMain([]string{"terms", writeStory(t)}, env); code != ExitSuccess {
			t.Fatalf("runMain(terms) = %d, want %d", code, ExitSuccess)
		}

		out := stdout.String()
		if !strings.Contains(out, "Chapter 1: Into the Forest") {
			t.Errorf("output missing chapter header: %q", out)
		}
		if !strings.Contains(out, "luminous: giving off light") {
			t.Errorf("output missing defined term: %q", out)
		}
		if !strings.Contains(out, "shimmered") {
			t.Errorf("output missing undefined term: %q", out)
		}
		if !strings.Contains(out, "(no candidates)") {
			t.Errorf("output missing empty-chapter marker: %q", out)
		}
	})

	t.Run("max flag caps candidates", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := runMain([]string{"terms", "-n", "1", writeStory(t)}, env); code != ExitSuccess {
			t.Fatalf("runMain(terms -n 1) = %d", code)
		}
		if strings.Contains(stdout.String(), "luminous") {
			t.Errorf("output = %q, want only the longest candidate", stdout.String())
		}
	})

	t.Run("no input file", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		if code := runMain([]string{"terms"}, env); code != ExitUsage {
			t.Errorf("runMain(terms) = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("missing file is an IO error", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		code := runMain([]string{"terms", filepath.Join(t.TempDir(), "nope.json")}, env)
		if code != ExitIO {
			t.Errorf("runMain(terms nope.json) = %d, want %d", code, ExitIO)
		}
	})
}

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("human output", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		code := runDoctorCmd(nil, env)
		if code != ExitSuccess && code != ExitGeneral {
			t.Errorf("runDoctorCmd() = %d, want 0 or 1", code)
		}
		out := stdout.String()
		if !strings.Contains(out, "story2pdf doctor") {
			t.Errorf("output missing header: %q", out)
		}
		if !strings.Contains(out, "Status:") {
			t.Errorf("output missing status line: %q", out)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		runDoctorCmd([]string{"--json"}, env)
		out := stdout.String()
		if !strings.Contains(out, `"status"`) || !strings.Contains(out, `"chrome"`) {
			t.Errorf("output not JSON-shaped: %q", out)
		}
	})
}
