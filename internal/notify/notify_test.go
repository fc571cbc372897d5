package notify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleNotification = `Hi team, a new environment is ready for testing.

Cluster: rosa-hcp-ppc64le-01
Platform: IBM Power
API URL: https://api.rosa-hcp-01.example.com:6443
Username: kubeadmin
Password: abcde-12345-fghij
Jira: OCPQE-1234
Polarion plan: OCP-57344
Notes: ingress cert rotated, retest after 14:00 UTC

Thanks!
`

func TestParseNotification_LabelledFields(t *testing.T) {
	got := ParseNotification(sampleNotification)
	want := Partial{
		ClusterName:  "rosa-hcp-ppc64le-01",
		Platform:     "IBM Power",
		APIURL:       "https://api.rosa-hcp-01.example.com:6443",
		Username:     "kubeadmin",
		Password:     "abcde-12345-fghij",
		JiraTicket:   "OCPQE-1234",
		PolarionPlan: "OCP-57344",
		Notes:        "ingress cert rotated, retest after 14:00 UTC",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseNotification mismatch (-want +got):\n%s", diff)
	}
	if missing := got.Missing(); len(missing) != 0 {
		t.Errorf("no required field should be missing, got %v", missing)
	}
}

func TestParseNotification_SynonymsAndBareURL(t *testing.T) {
	text := `cluster name: hcp-arm-03
arch: arm64
the api endpoint is https://api.hcp-arm-03.example.com:6443, kubeadmin creds below
user: kubeadmin
kubeadmin password: s3cret
`
	got := ParseNotification(text)
	want := Partial{
		ClusterName: "hcp-arm-03",
		Platform:    "arm64",
		APIURL:      "https://api.hcp-arm-03.example.com:6443",
		Username:    "kubeadmin",
		Password:    "s3cret",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseNotification mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNotification_FirstOccurrenceWins(t *testing.T) {
	text := "Cluster: first\nCluster: second\n"
	if got := ParseNotification(text).ClusterName; got != "first" {
		t.Errorf("want first occurrence, got %q", got)
	}
}

func TestParseSheetRow(t *testing.T) {
	tabRow := "hcp-x86-07\tAWS x86\thttps://api.x.example.com:6443\tkubeadmin\tpw\tOCPQE-7\tOCP-9\tslow etcd"
	csvRow := `hcp-x86-07,AWS x86,https://api.x.example.com:6443,kubeadmin,pw,OCPQE-7,OCP-9,"slow etcd, retest"`

	want := Partial{
		ClusterName:  "hcp-x86-07",
		Platform:     "AWS x86",
		APIURL:       "https://api.x.example.com:6443",
		Username:     "kubeadmin",
		Password:     "pw",
		JiraTicket:   "OCPQE-7",
		PolarionPlan: "OCP-9",
		Notes:        "slow etcd",
	}
	if diff := cmp.Diff(want, ParseSheetRow(tabRow)); diff != "" {
		t.Errorf("tab row mismatch (-want +got):\n%s", diff)
	}

	want.Notes = "slow etcd, retest"
	if diff := cmp.Diff(want, ParseSheetRow(csvRow)); diff != "" {
		t.Errorf("csv row mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSheetRow_BlankAndExtraCells(t *testing.T) {
	got := ParseSheetRow("c1\t\thttps://api.c1.example.com:6443\tkubeadmin\tpw\t\t\t\tignored-extra")
	if got.Platform != "" {
		t.Errorf("blank cell should leave field unset, got %q", got.Platform)
	}
	if got.ClusterName != "c1" || got.Password != "pw" {
		t.Errorf("unexpected parse: %+v", got)
	}
}

func TestMerge_ExistingValuesWin(t *testing.T) {
	base := Partial{ClusterName: "keep-me", Platform: ""}
	other := Partial{ClusterName: "lose-me", Platform: "IBM Power"}
	got := base.Merge(other)
	if got.ClusterName != "keep-me" || got.Platform != "IBM Power" {
		t.Errorf("merge precedence broken: %+v", got)
	}
}

func TestMissing_NamesRequiredFieldsInOrder(t *testing.T) {
	missing := Partial{Username: "kubeadmin"}.Missing()
	want := []string{"cluster_name", "api_url", "password"}
	if diff := cmp.Diff(want, missing); diff != "" {
		t.Errorf("missing fields (-want +got):\n%s", diff)
	}
}
