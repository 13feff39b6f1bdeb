package cmd

import "testing"

func Test_normalizeTables(t *testing.T) {
	got := normalizeTables([]string{" Entries ", "", "USERS"})
	if len(got) != 2 || got[0] != "entries" || got[1] != "users" {
		t.Fatalf("unexpected result: %v", got)
	}
	if normalizeTables([]string{"  ", ""}) != nil {
		t.Fatal("expected nil for blank input")
	}
}
