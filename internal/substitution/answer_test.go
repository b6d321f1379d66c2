package substitution

import "testing"

func TestDeriveAnswerPrefersGlossInSentence(t *testing.T) {
	got := DeriveAnswer("big, large (tamaño)", "The house is big.")
	if got != "big" {
		t.Fatalf("got %q, want %q", got, "big")
	}
}

func TestDeriveAnswer(t *testing.T) {
	cases := []struct {
		name        string
		translation string
		corrected   string
		want        string
	}{
		{"first candidate when none in sentence", "big, large", "The dog barks.", "big"},
		{"slash separated glosses", "to run / to flow", "Rivers run north.", "to run"},
		{"semicolons", "house; home", "They came home late.", "home"},
		{"parenthetical stripped", "(informal) buddy, friend", "He was my friend.", "friend"},
		{"bracketed aside stripped", "cat [animal]", "A cat slept.", "cat"},
		{"long candidates rejected", "a very long winded explanation of it, short", "None here.", "short"},
		{"sentence punctuation rejected", "Means: big. Also, large", "It was large.", "large"},
		{"word-boundary match only", "house", "The houses are old.", "house"},
		{"fallback to first word token", "an overly long gloss with far too many words to keep", "", "an"},
		{"empty translation", "", "Whatever.", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveAnswer(tc.translation, tc.corrected); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCollapseSlashOptions(t *testing.T) {
	cases := []struct {
		name      string
		sentence  string
		preferred string
		want      string
	}{
		{"prefers answer side", "The casa/house was big.", "casa", "The casa was big."},
		{"prefers answer on right", "The casa/house was big.", "house", "The house was big."},
		{"defaults to right side", "The casa/house was big.", "roof", "The house was big."},
		{"no slash untouched", "The house was big.", "house", "The house was big."},
		{"multiple artifacts", "La casa/house es grande/big.", "big", "La house es big."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CollapseSlashOptions(tc.sentence, tc.preferred); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"closing quote stays attached", `"¿Dónde está?" preguntó.`, []string{`"¿Dónde está?"`, "preguntó."}},
		{"no terminator", "just a fragment", []string{"just a fragment"}},
		{"trailing fragment kept", "Done. and then", []string{"Done.", "and then"}},
		{"empty", "   ", nil},
		{"ellipsis", "Wait… Go.", []string{"Wait…", "Go."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSentences(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("sentence %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
