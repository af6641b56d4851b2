package db

import "testing"

func TestPreferredLanguage(t *testing.T) {
	post := BlogPost{Translations: TranslationMap{
		"jp": {Title: "こんにちは"},
		"id": {Title: "Halo"},
	}}
	if got := post.PreferredLanguage(); got != "id" {
		t.Fatalf("expected lexicographically first language, got %q", got)
	}

	post.Translations["en"] = Translation{Title: "Hello"}
	if got := post.PreferredLanguage(); got != "en" {
		t.Fatalf("expected en to win once present, got %q", got)
	}

	langs := post.Languages()
	if len(langs) != 3 || langs[0] != "en" {
		t.Fatalf("expected en-first language list, got %v", langs)
	}
}

func TestPreferredTranslationEmptyPost(t *testing.T) {
	var post BlogPost
	if _, ok := post.PreferredTranslation(); ok {
		t.Fatalf("expected no translation for empty post")
	}
	if langs := post.Languages(); langs != nil {
		t.Fatalf("expected nil languages, got %v", langs)
	}
}
