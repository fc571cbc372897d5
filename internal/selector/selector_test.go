package selector_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"envhist/internal/envstore"
	"envhist/internal/selector"
)

var t0 = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// fakeClock advances one second per call so every timestamp is distinct.
func fakeClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// newStore seeds a temp store with the named clusters, oldest first.
// Listing order is most-recently-used first, so the LAST name is entry 1.
func newStore(t *testing.T, clusters ...string) *envstore.Store {
	t.Helper()
	st := envstore.Open(filepath.Join(t.TempDir(), "store.json"), envstore.WithClock(fakeClock(t0)))
	for _, name := range clusters {
		_, err := st.Add(&envstore.Record{
			ClusterName: name,
			Platform:    "AWS-ARM",
			APIURL:      "https://api." + name + ".example.com:6443",
			Username:    "kubeadmin",
			Password:    "pw-" + name,
			TestStatus:  envstore.StatusInProgress,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	return st
}

// run drives a session with scripted input lines and returns the output.
func run(t *testing.T, st *envstore.Store, script string, opts ...selector.Option) string {
	t.Helper()
	var out strings.Builder
	sel := selector.New(st, selector.NewPrompter(strings.NewReader(script), &out), &out, opts...)
	if err := sel.Run(); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func TestRun_QuitFromListing(t *testing.T) {
	st := newStore(t, "alpha", "beta")
	out := run(t, st, "q\n")
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Errorf("listing missing records:\n%s", out)
	}
}

func TestRun_EndOfInputAbortsCleanly(t *testing.T) {
	st := newStore(t, "alpha")
	before, _ := st.Load()

	run(t, st, "") // no input at all

	after, err := st.Load()
	if err != nil {
		t.Fatalf("Load after abort: %v", err)
	}
	if len(after) != len(before) || !after[0].LastUsedAt.Equal(before[0].LastUsedAt) {
		t.Error("aborted session must not write to the store")
	}
}

func TestRun_OutOfRangeSelectionStaysInListing(t *testing.T) {
	st := newStore(t, "alpha")
	out := run(t, st, "99\nq\n")
	if !strings.Contains(out, "no such entry") {
		t.Errorf("want out-of-range report:\n%s", out)
	}
}

func TestRun_ConnectPrintsLoginAndTouches(t *testing.T) {
	st := newStore(t, "alpha")
	before, _ := st.Load()

	out := run(t, st, "1\nc\nq\n")

	if !strings.Contains(out, "oc login https://api.alpha.example.com:6443 -u kubeadmin") {
		t.Errorf("login command not printed:\n%s", out)
	}
	after, _ := st.Load()
	if !after[0].LastUsedAt.After(before[0].LastUsedAt) {
		t.Error("connect must touch last_used_at")
	}
}

func TestRun_UpdateStatusAndNotes(t *testing.T) {
	st := newStore(t, "alpha")
	before, _ := st.Load()

	run(t, st, "1\nu\npass\nretested fine\ny\nq\n")

	after, _ := st.Load()
	if after[0].TestStatus != envstore.StatusPass {
		t.Errorf("status: want pass, got %s", after[0].TestStatus)
	}
	if after[0].Notes != "retested fine" {
		t.Errorf("notes: got %q", after[0].Notes)
	}
	if !after[0].LastUsedAt.Equal(before[0].LastUsedAt) {
		t.Error("update must not touch last_used_at")
	}
}

func TestRun_InvalidStatusReprompts(t *testing.T) {
	st := newStore(t, "alpha")

	out := run(t, st, "1\nu\nmaybe\npass\n\ny\nq\n")

	if !strings.Contains(out, "invalid test_status") {
		t.Errorf("want validation report:\n%s", out)
	}
	after, _ := st.Load()
	if after[0].TestStatus != envstore.StatusPass {
		t.Errorf("retry after invalid status failed, got %s", after[0].TestStatus)
	}
}

func TestRun_UpdateCancelled(t *testing.T) {
	st := newStore(t, "alpha")
	run(t, st, "1\nu\nfail\n\nn\nq\n")
	after, _ := st.Load()
	if after[0].TestStatus != envstore.StatusInProgress {
		t.Errorf("cancelled update must not persist, got %s", after[0].TestStatus)
	}
}

func TestRun_DeleteNeedsConfirmation(t *testing.T) {
	st := newStore(t, "alpha", "beta")

	// Entry 1 is beta (most recently used). Refuse first, then delete.
	run(t, st, "1\nd\nn\nq\n")
	records, _ := st.Load()
	if len(records) != 2 {
		t.Fatalf("declined delete removed a record: %d left", len(records))
	}

	run(t, st, "1\nd\ny\nq\n")
	records, _ = st.Load()
	if len(records) != 1 || records[0].ClusterName != "alpha" {
		t.Errorf("want only alpha left, got %d records", len(records))
	}
}

func TestRun_FilterThenSelect(t *testing.T) {
	st := newStore(t, "power-a", "arm-b")
	out := run(t, st, "/power\n1\nb\nall\nq\n")
	if !strings.Contains(out, `filter: "power"`) {
		t.Errorf("filter banner missing:\n%s", out)
	}
	if !strings.Contains(out, "Cluster:   power-a") {
		t.Errorf("filtered selection picked wrong record:\n%s", out)
	}
}

func TestRun_MaskedPasswordByDefault(t *testing.T) {
	st := newStore(t, "alpha")
	out := run(t, st, "1\nb\nq\n")
	if strings.Contains(out, "pw-alpha") {
		t.Errorf("plaintext password leaked into detail view:\n%s", out)
	}

	out = run(t, st, "1\nb\nq\n", selector.WithCredentials())
	if !strings.Contains(out, "pw-alpha") {
		t.Errorf("WithCredentials should show the password:\n%s", out)
	}
}
