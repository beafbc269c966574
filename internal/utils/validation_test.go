package utils

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"Asha@Example.ORG":  "asha@example.org",
		"  user@mail.com  ": "user@mail.com",
		"plain@mail.com":    "plain@mail.com",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	cases := map[string]bool{
		"":           true,
		"   ":        true,
		"\t\n":       true,
		"Untitled":   false,
		"  a  ":      false,
		"Not a bank": false,
	}
	for in, want := range cases {
		if got := IsBlank(in); got != want {
			t.Errorf("IsBlank(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGenerateRandomNumericString(t *testing.T) {
	code := GenerateRandomNumericString(6)
	if len(code) != 6 {
		t.Fatalf("expected 6 characters, got %d", len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("expected digits only, got %q", code)
		}
	}
}

func TestCreatePaginationMeta(t *testing.T) {
	params := &PaginationParams{Page: 2, PageSize: 10}
	meta := CreatePaginationMeta(params, 25)

	if meta.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrevious {
		t.Errorf("page 2 of 3 has both neighbours, got next=%v prev=%v", meta.HasNext, meta.HasPrevious)
	}
	if params.GetSkip() != 10 {
		t.Errorf("expected skip 10, got %d", params.GetSkip())
	}
}
