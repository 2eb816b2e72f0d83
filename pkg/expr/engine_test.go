package expr

import (
	"testing"
)

func TestEval(t *testing.T) {
	e := New()
	e.SetVariable("APP_ID", "com.example.app")

	got, err := e.Eval("APP_ID.toUpperCase()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "COM.EXAMPLE.APP" {
		t.Errorf("got %v", got)
	}
}

func TestEvalBool_Platform(t *testing.T) {
	e := New()
	e.SetPlatform("ios")

	tests := []struct {
		code     string
		expected bool
	}{
		{`platform === "ios"`, true},
		{`platform === "android"`, false},
		{`platform.length > 2`, true},
	}
	for _, tt := range tests {
		got, err := e.EvalBool(tt.code)
		if err != nil {
			t.Fatalf("%s: %v", tt.code, err)
		}
		if got != tt.expected {
			t.Errorf("%s: got %v", tt.code, got)
		}
	}
}

func TestExpand(t *testing.T) {
	e := New()
	e.SetVariables(map[string]string{"USER": "alice", "DOMAIN": "example.com"})
	e.SetPlatform("android")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single expression",
			input:    "${USER}@${DOMAIN}",
			expected: "alice@example.com",
		},
		{
			name:     "expression with logic",
			input:    `${platform === "android" ? "SAVE" : "Save"}`,
			expected: "SAVE",
		},
		{
			name:     "no expressions",
			input:    "#save",
			expected: "#save",
		},
		{
			name:     "nested braces",
			input:    "${(() => { return USER })()}",
			expected: "alice",
		},
		{
			name:     "broken expression left in place",
			input:    "${not valid js",
			expected: "${not valid js",
		},
		{
			name:     "env object access",
			input:    "${env.USER}",
			expected: "alice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Expand(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
