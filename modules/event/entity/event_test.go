package entity

import "testing"

func TestLocalizedTextResolve(t *testing.T) {
	text := LocalizedText{"en": "Han River Picnic", "ko": "한강 피크닉"}

	if got := text.Resolve("ko"); got != "한강 피크닉" {
		t.Fatalf("ko: %q", got)
	}
	if got := text.Resolve("en"); got != "Han River Picnic" {
		t.Fatalf("en: %q", got)
	}
	// unknown locales fall back to the default locale
	if got := text.Resolve("ja"); got != "Han River Picnic" {
		t.Fatalf("fallback: %q", got)
	}

	koOnly := LocalizedText{"ko": "한강 피크닉"}
	if got := koOnly.Resolve("en"); got != "한강 피크닉" {
		t.Fatalf("any-value fallback: %q", got)
	}

	if got := (LocalizedText{}).Resolve("en"); got != "" {
		t.Fatalf("empty: %q", got)
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range []Category{CategoryAcademic, CategoryCultural, CategoryClub, CategoryLanguage, CategorySports, CategorySocial} {
		if !c.IsValid() {
			t.Fatalf("%q should be valid", c)
		}
	}
	if Category("party").IsValid() {
		t.Fatalf("unknown category accepted")
	}
}
