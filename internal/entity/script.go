package entity

import "strings"

// ScriptKey identifies one trainable character within a language's script tab
// (e.g. hiragana vs katakana for Japanese). Encoded keys join the parts with
// underscores; language codes never contain underscores and characters are
// single glyphs, so decoding anchors on the first and last separator and the
// tab id keeps anything in between.
type ScriptKey struct {
	Language  Language
	TabID     string
	Character string
}

// Encode renders the composite storage key "<language>_<tabID>_<character>".
func (k ScriptKey) Encode() string {
	return string(k.Language) + "_" + k.TabID + "_" + k.Character
}

// ParseScriptKey splits an encoded storage key back into its parts. The
// language is everything before the first underscore and the character
// everything after the last, leaving the tab id in between. Returns false for
// keys without at least two separators.
func ParseScriptKey(s string) (ScriptKey, bool) {
	first := strings.Index(s, "_")
	last := strings.LastIndex(s, "_")
	if first < 0 || last <= first {
		return ScriptKey{}, false
	}
	return ScriptKey{
		Language:  Language(s[:first]),
		TabID:     s[first+1 : last],
		Character: s[last+1:],
	}, true
}

// ScriptProgress maps encoded ScriptKeys to their review state. This is the
// persisted shape of the alphabet trainer's progress blob.
type ScriptProgress map[string]ReviewState
