package locale

import "testing"

func TestT_Translates(t *testing.T) {
	if got := T("fr", "settings"); got != "Paramètres" {
		t.Errorf("T(fr, settings) = %q", got)
	}
	if got := T("de", "logout"); got != "Abmelden" {
		t.Errorf("T(de, logout) = %q", got)
	}
}

func TestT_FallsBackToEnglish(t *testing.T) {
	if got := T("ja", "settings"); got != "Settings" {
		t.Errorf("T(ja, settings) = %q, want English fallback", got)
	}
}

func TestT_UnknownKeyPassesThrough(t *testing.T) {
	if got := T("en", "noSuchKey"); got != "noSuchKey" {
		t.Errorf("T(en, noSuchKey) = %q", got)
	}
}

func TestNew_UnsupportedLangDetects(t *testing.T) {
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	tr := New("ja")
	if tr.Lang() != "de" {
		t.Errorf("Lang() = %q, want de", tr.Lang())
	}
}

func TestTranslator_ZeroValueIsEnglish(t *testing.T) {
	var tr Translator
	if got := tr.T("connect"); got != "Connect" {
		t.Errorf("T(connect) = %q", got)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		lcAll string
		lang  string
		want  string
	}{
		{"french posix locale", "fr_FR.UTF-8", "", "fr"},
		{"german from LANG", "", "de_DE.UTF-8", "de"},
		{"LC_ALL wins over LANG", "fr_FR.UTF-8", "de_DE.UTF-8", "fr"},
		{"regional variant matches base", "fr_CA.UTF-8", "", "fr"},
		{"unsupported falls back", "ja_JP.UTF-8", "", "en"},
		{"C locale skipped", "C", "de_DE.UTF-8", "de"},
		{"empty environment", "", "", "en"},
		{"modifier stripped", "de_DE.UTF-8@euro", "", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LC_MESSAGES", "")
			t.Setenv("LANG", tt.lang)
			if got := Detect(); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Every key present in English must exist in every other table, so no
// user ever sees mixed-language text from a missing translation.
func TestTables_Complete(t *testing.T) {
	en := tables["en"]
	for lang, table := range tables {
		if lang == "en" {
			continue
		}
		for key := range en {
			if _, ok := table[key]; !ok {
				t.Errorf("%s table is missing %q", lang, key)
			}
		}
		for key := range table {
			if _, ok := en[key]; !ok {
				t.Errorf("%s table has extra key %q", lang, key)
			}
		}
	}
}
