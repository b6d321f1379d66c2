package substitution

import "testing"

func TestFuzzyFindTokenInflectedForm(t *testing.T) {
	// "casas" vs lemma "casa": distance 1 over max length 5 gives 0.8, plus
	// the 4-rune common prefix bonus. Must match.
	token, ok := FuzzyFindToken("Las casas son viejas", []string{"casa"})
	if !ok {
		t.Fatal("expected a match for inflected form")
	}
	if token != "casas" {
		t.Fatalf("got token %q, want %q", token, "casas")
	}
}

func TestFuzzyFindTokenRejectsUnrelated(t *testing.T) {
	if token, ok := FuzzyFindToken("el perro ladra", []string{"gato"}); ok {
		t.Fatalf("unexpected match %q for unrelated candidate", token)
	}
}

func TestFuzzyFindTokenExactWins(t *testing.T) {
	token, ok := FuzzyFindToken("un gato negro", []string{"gato"})
	if !ok || token != "gato" {
		t.Fatalf("got (%q, %v), want exact token gato", token, ok)
	}
}

func TestFuzzyFindTokenExactIgnoresLengthGates(t *testing.T) {
	// Equality matches are accepted even below the fuzzy length gates.
	token, ok := FuzzyFindToken("va al mar", []string{"va"})
	if !ok || token != "va" {
		t.Fatalf("got (%q, %v), want short exact token", token, ok)
	}
}

func TestFuzzyFindTokenGates(t *testing.T) {
	cases := []struct {
		name      string
		sentence  string
		candidate string
		wantMatch bool
	}{
		{"short token gated", "so much", "sole", false},
		{"short candidate gated", "corren rápido", "cor", false},
		{"prefix below two gated", "hablamos pronto", "xablamos", false},
		{"conjugated verb matches lemma", "ellos hablaron ayer", "hablar", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := FuzzyFindToken(tc.sentence, []string{tc.candidate})
			if ok != tc.wantMatch {
				t.Fatalf("match = %v, want %v", ok, tc.wantMatch)
			}
		})
	}
}

func TestFuzzyFindTokenCaseInsensitive(t *testing.T) {
	token, ok := FuzzyFindToken("Casas blancas", []string{"casa"})
	if !ok || token != "Casas" {
		t.Fatalf("got (%q, %v), want original-case token Casas", token, ok)
	}
}

func TestFuzzyFindTokenEmpty(t *testing.T) {
	if _, ok := FuzzyFindToken("", []string{"casa"}); ok {
		t.Fatal("empty sentence must not match")
	}
	if _, ok := FuzzyFindToken("una frase", nil); ok {
		t.Fatal("no candidates must not match")
	}
	if _, ok := FuzzyFindToken("una frase", []string{"", "  "}); ok {
		t.Fatal("blank candidates must not match")
	}
}
