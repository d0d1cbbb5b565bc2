package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIsContainer_ExplicitOverride(t *testing.T) {
	t.Setenv("PDF2MD_CONTAINER", "1")

	got, hint := isContainer()
	if !got || hint != "PDF2MD_CONTAINER=1" {
		t.Errorf("isContainer() = %v, %q", got, hint)
	}
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	env, stdout, _ := testEnv()

	runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("doctor --json output is not valid JSON: %v\n%s", err, stdout.String())
	}
	switch result.Status {
	case "ready", "warnings", "errors":
	default:
		t.Errorf("unexpected status %q", result.Status)
	}
	if result.Env.OS == "" || result.Env.Arch == "" {
		t.Error("platform fields should be populated")
	}
}

func TestRunDoctorCmd_HumanReadable(t *testing.T) {
	env, stdout, _ := testEnv()

	runDoctorCmd(nil, env)

	out := stdout.String()
	for _, section := range []string{"pdf2md doctor", "Authentication", "Chrome/Chromium", "Environment", "System", "Status:"} {
		if !strings.Contains(out, section) {
			t.Errorf("output missing %q section", section)
		}
	}
}

func TestCheckAuth_EnvKey(t *testing.T) {
	t.Setenv("PDF2MD_API_KEY", "k")

	result := &doctorResult{}
	checkAuth(result)

	if !result.Auth.KeyFound || result.Auth.Source != "PDF2MD_API_KEY" {
		t.Errorf("auth = %+v", result.Auth)
	}
}

func TestCheckSystem(t *testing.T) {
	t.Parallel()

	result := &doctorResult{}
	checkSystem(result)

	if !result.System.TempWritable {
		t.Error("temp dir should be writable in tests")
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}
