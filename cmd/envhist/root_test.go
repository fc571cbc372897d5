package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags clears the package-level flag state so sequential in-process
// executions do not leak values into each other.
func resetFlags() {
	rootFlags.store, rootFlags.configPath, rootFlags.logLevel, rootFlags.logFormat = "", "", "", ""
	listFlags.sortBy, listFlags.status, listFlags.platform, listFlags.output = "", "", "", ""
	searchFlags.output = ""
	statsFlags.recent = 0
	selectFlags.sortBy, selectFlags.showCreds = "", false
	importFlags.file, importFlags.row, importFlags.fromDir = "", "", ""
	importFlags.cluster, importFlags.platform, importFlags.apiURL = "", "", ""
	importFlags.username, importFlags.password, importFlags.status = "", "", ""
	importFlags.notes, importFlags.jira, importFlags.polarion = "", "", ""
	showFlags.showCreds = false
	updateFlags.status, updateFlags.notes = "", ""
	deleteFlags.yes = false
}

// execute runs the root command in-process with the given args and returns
// everything it wrote.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestImport_MissingRequiredFieldNamed(t *testing.T) {
	store := filepath.Join(t.TempDir(), "store.json")
	_, err := execute(t, "import", "--store", store,
		"--cluster", "rosa-hcp-01",
		"--api-url", "https://api.rosa-hcp-01.example.com:6443",
		"--username", "kubeadmin",
		"--password", "")
	if err == nil {
		t.Fatal("want validation error, got nil")
	}
	if !strings.Contains(err.Error(), "password") {
		t.Errorf("error must name the missing field: %v", err)
	}
	if _, statErr := os.Stat(store); !os.IsNotExist(statErr) {
		t.Error("failed import must not create the store file")
	}
}

func TestCommands_EndToEnd(t *testing.T) {
	store := filepath.Join(t.TempDir(), "store.json")

	out, err := execute(t, "import", "--store", store,
		"--cluster", "rosa-hcp-ppc64le-01",
		"--platform", "IBM Power",
		"--api-url", "https://api.rosa-hcp-01.example.com:6443",
		"--username", "kubeadmin",
		"--password", "hunter2-hunter2",
		"--status", "blocked",
		"--jira", "OCPQE-1234")
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "recorded rosa-hcp-ppc64le-01") {
		t.Errorf("import confirmation missing:\n%s", out)
	}

	out, err = execute(t, "list", "--store", store, "-o", "table", "--status", "blocked")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "rosa-hcp-ppc64le-01") || !strings.Contains(out, "Blocked") {
		t.Errorf("list output:\n%s", out)
	}

	out, err = execute(t, "search", "ocpqe", "--store", store, "-o", "table")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "rosa-hcp-ppc64le-01") {
		t.Errorf("case-insensitive search missed the record:\n%s", out)
	}

	out, err = execute(t, "stats", "--store", store)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "1 environment(s) recorded") || !strings.Contains(out, "IBM Power") {
		t.Errorf("stats output:\n%s", out)
	}

	out, err = execute(t, "connect", "rosa-hcp-ppc64le-01", "--store", store)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if !strings.Contains(out, "oc login https://api.rosa-hcp-01.example.com:6443 -u kubeadmin") {
		t.Errorf("connect output:\n%s", out)
	}

	out, err = execute(t, "update", "rosa-hcp-ppc64le-01", "--store", store, "--status", "pass")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, "status=pass") {
		t.Errorf("update output:\n%s", out)
	}

	if _, err = execute(t, "delete", "rosa-hcp-ppc64le-01", "--store", store); err == nil {
		t.Fatal("delete without --yes must fail")
	}
	out, err = execute(t, "delete", "rosa-hcp-ppc64le-01", "--store", store, "--yes")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "deleted rosa-hcp-ppc64le-01") {
		t.Errorf("delete output:\n%s", out)
	}
}

func TestImport_FromNotificationFile(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "store.json")
	note := filepath.Join(dir, "note.txt")
	text := "Cluster: hcp-arm-03\nPlatform: AWS-ARM\n" +
		"API URL: https://api.hcp-arm-03.example.com:6443\n" +
		"Username: kubeadmin\nPassword: s3cret\n"
	if err := os.WriteFile(note, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	// The flag overrides the parsed platform.
	out, err := execute(t, "import", "--store", store, "--file", note, "--platform", "AWS-ARM-dev")
	if err != nil {
		t.Fatalf("import --file: %v\n%s", err, out)
	}
	out, err = execute(t, "show", "hcp-arm-03", "--store", store)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Platform:  AWS-ARM-dev") {
		t.Errorf("flag should override parsed platform:\n%s", out)
	}
	if strings.Contains(out, "s3cret") {
		t.Errorf("password must be masked by default:\n%s", out)
	}
}
