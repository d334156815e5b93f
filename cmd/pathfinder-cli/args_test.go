package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs root with args and returns any error, keeping cobra's
// usage output out of the test log.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// newTestRoot returns the real command tree with client setup stubbed out.
func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	resetFlags(t)
	root := newRootCmd()
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {}
	return root
}

func TestArgCountRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"node create without name", []string{"node", "create"}},
		{"node create with two names", []string{"node", "create", "a", "b"}},
		{"node get without id", []string{"node", "get"}},
		{"node list with extra arg", []string{"node", "list", "x"}},
		{"node delete without id", []string{"node", "delete"}},
		{"edge create with two args", []string{"edge", "create", "1", "2"}},
		{"edge delete without id", []string{"edge", "delete"}},
		{"graph bfs without start", []string{"graph", "bfs"}},
		{"graph path with one id", []string{"graph", "path", "1"}},
		{"graph stats with extra arg", []string{"graph", "stats", "x"}},
		{"import with one file", []string{"import", "nodes.csv"}},
		{"login without username", []string{"login"}},
		{"register without username", []string{"register"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := executeArgs(t, newTestRoot(t), tc.args...); err == nil {
				t.Errorf("expected an argument error for %v", tc.args)
			}
		})
	}
}

func TestArgCountAccepted(t *testing.T) {
	tests := []struct {
		path []string
		args []string
	}{
		{[]string{"node", "create"}, []string{"alpha"}},
		{[]string{"node", "get"}, []string{"1"}},
		{[]string{"node", "list"}, nil},
		{[]string{"edge", "create"}, []string{"1", "2", "0.5"}},
		{[]string{"graph", "path"}, []string{"1", "2"}},
		{[]string{"import"}, []string{"nodes.csv", "edges.csv"}},
	}

	root := newTestRoot(t)
	for _, tc := range tests {
		cmd, _, err := root.Find(tc.path)
		if err != nil {
			t.Fatalf("find %v: %v", tc.path, err)
		}
		if err := cmd.ValidateArgs(tc.args); err != nil {
			t.Errorf("%v %v: unexpected error: %v", tc.path, tc.args, err)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9007199254740993", 9007199254740993, false},
		{"0", 0, true},
		{"-4", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := parseID(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseID(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("parseID(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	root := newTestRoot(t)
	for _, name := range []string{"url", "token", "format", "profile"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}
}
