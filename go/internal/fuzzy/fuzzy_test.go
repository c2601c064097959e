package fuzzy

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "josh allen", "josh allen", 1},
		{"empty query", "", "josh allen", 0},
		{"empty candidate", "josh allen", "", 0},
		{"disjoint", "abc", "xyz", 0},
		{"prefix", "josh", "josh allen", 2 * 4.0 / 14.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	a, b := "lamar jackson", "lamar jaxon"
	if Ratio(a, b) != Ratio(b, a) {
		t.Errorf("Ratio is not symmetric for %q and %q", a, b)
	}
}

func TestCloseMatchesOrdering(t *testing.T) {
	candidates := []string{"josh allen", "josh jacobs", "keenan allen", "aaron rodgers"}
	matches := CloseMatches("josh allen", candidates, 5, 0.6)

	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Value != "josh allen" {
		t.Errorf("best match = %q, want %q", matches[0].Value, "josh allen")
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not sorted: %v before %v", matches[i-1], matches[i])
		}
	}
}

func TestCloseMatchesCutoff(t *testing.T) {
	matches := CloseMatches("zzz", []string{"josh allen", "lamar jackson"}, 5, 0.6)
	if len(matches) != 0 {
		t.Errorf("expected no matches above cutoff, got %v", matches)
	}
}

func TestCloseMatchesLimit(t *testing.T) {
	candidates := []string{"ja", "jam", "jame", "james"}
	matches := CloseMatches("james", candidates, 2, 0.1)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Value != "james" {
		t.Errorf("best match = %q, want %q", matches[0].Value, "james")
	}
}

func TestCloseMatchesIndex(t *testing.T) {
	candidates := []string{"jalen hurts", "josh allen"}
	matches := CloseMatches("josh allen", candidates, 1, 0.9)
	if len(matches) != 1 || matches[0].Index != 1 {
		t.Fatalf("expected single match at index 1, got %v", matches)
	}
}

func TestCommonChars(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "cba", 3},
		{"abc", "xyz", 0},
		{"aabbcc", "abc", 3},
		{"jg", "joe burrow", 1},
	}
	for _, tt := range tests {
		if got := CommonChars(tt.a, tt.b); got != tt.want {
			t.Errorf("CommonChars(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
