package indexer

import "testing"

func TestDeriveEntity(t *testing.T) {
	cases := []struct {
		fileName string
		want     string
	}{
		{"acme_partnership_proposal.pdf", "Acme"},
		{"bright-futures-partnership-2024.pdf", "Bright Futures"},
		{"Northside Schools Pitch Deck v2.pdf", "Northside Schools"},
		{"green_earth.pdf", "Green Earth"},
		{"draft_final_copy.pdf", "Unknown"},
		{"/corpus/nested/acme_proposal.pdf", "Acme"},
		{"UPPER_CASE_PARTNER.pdf", "Upper Case"},
	}

	for _, tc := range cases {
		t.Run(tc.fileName, func(t *testing.T) {
			if got := DeriveEntity(tc.fileName); got != tc.want {
				t.Errorf("DeriveEntity(%q) = %q, want %q", tc.fileName, got, tc.want)
			}
		})
	}
}

func TestDeriveEntityStable(t *testing.T) {
	first := DeriveEntity("acme_partnership.pdf")
	for i := 0; i < 10; i++ {
		if got := DeriveEntity("acme_partnership.pdf"); got != first {
			t.Fatalf("derivation changed between runs: %q then %q", first, got)
		}
	}
}
