package locale

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"en":    LanguageEnglish,
		"EN-us": LanguageEnglish,
		"id":    LanguageIndonesian,
		"in-ID": LanguageIndonesian,
		"ja":    LanguageJapanese,
		"jp":    LanguageJapanese,
		"fr":    "",
		"":      "",
		"  En ": LanguageEnglish,
	}

	for input, want := range cases {
		if got := NormalizeLanguage(input); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLanguageFromAcceptLanguage(t *testing.T) {
	if got := LanguageFromAcceptLanguage("fr-FR,ja;q=0.8,en;q=0.5"); got != LanguageJapanese {
		t.Fatalf("expected first supported language, got %q", got)
	}
	if got := LanguageFromAcceptLanguage("de,fr"); got != "" {
		t.Fatalf("expected empty for unsupported header, got %q", got)
	}
}

func TestDisplayCode(t *testing.T) {
	if got := DisplayCode(" en"); got != "EN" {
		t.Fatalf("expected EN, got %q", got)
	}
}
