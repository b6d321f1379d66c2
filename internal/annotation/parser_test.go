package annotation

import (
	"reflect"
	"testing"

	"github.com/lexigrad/lexigrad/internal/entity"
)

func TestParsePlainText(t *testing.T) {
	got := Parse("El gato duerme.")
	want := []entity.AnnotationSegment{{Kind: entity.SegmentText, Content: "El gato duerme."}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParseEmpty(t *testing.T) {
	if got := Parse(""); got != nil {
		t.Fatalf("expected nil segments, got %+v", got)
	}
}

func TestParseWellFormed(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []entity.AnnotationSegment
	}{
		{
			"two-part annotation",
			"The {{casa|casa}} was empty.",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentText, Content: "The "},
				{Kind: entity.SegmentTerm, Display: "casa", Key: "casa"},
				{Kind: entity.SegmentText, Content: " was empty."},
			},
		},
		{
			"three-part annotation with native script",
			"I read the {{shinbun|newspaper|新聞}} today.",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentText, Content: "I read the "},
				{Kind: entity.SegmentTerm, Display: "shinbun", Key: "newspaper", NativeDisplay: "新聞"},
				{Kind: entity.SegmentText, Content: " today."},
			},
		},
		{
			"key is lowercased",
			"{{Perro|Perro}}",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentTerm, Display: "Perro", Key: "perro"},
			},
		},
		{
			"adjacent annotations",
			"{{uno|uno}}{{dos|dos}}",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentTerm, Display: "uno", Key: "uno"},
				{Kind: entity.SegmentTerm, Display: "dos", Key: "dos"},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []entity.AnnotationSegment
	}{
		{
			"stray brace before key",
			"{{hola|}hello}",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentTerm, Display: "hola", Key: "hello"},
			},
		},
		{
			"stray brace before native",
			"{{hola|hello|}hola}}",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentTerm, Display: "hola", Key: "hello", NativeDisplay: "hola"},
			},
		},
		{
			"trailing pipe in key",
			"{{hola|hello|}}",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentTerm, Display: "hola", Key: "hello"},
			},
		},
		{
			"unmatched braces stay literal",
			"a {{ lone opener and }} closer",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentText, Content: "a {{ lone opener and }} closer"},
			},
		},
		{
			"annotation without pipe stays literal",
			"look at {{this}}",
			[]entity.AnnotationSegment{
				{Kind: entity.SegmentText, Content: "look at {{this}}"},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestStripRoundTrip(t *testing.T) {
	// Text with no annotation markup passes through unchanged.
	plain := []string{
		"",
		"Just a sentence.",
		"Braces } here { but no annotations.",
		"Multi\nline\ntext.",
	}
	for _, in := range plain {
		if got := Strip(in); got != in {
			t.Fatalf("Strip(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestStripRemovesMarkup(t *testing.T) {
	in := "La {{casa|casa|casita}} es {{grande|grande}}."
	want := "La casa es grande."
	if got := Strip(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCanonicalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"{{hola|}hello}", "{{hola|hello}}"},
		{"{{hola|hello|}hola}}", "{{hola|hello|hola}}"},
		{"{{casa|casa}} stays", "{{casa|casa}} stays"},
		{"no markup", "no markup"},
	}
	for _, tc := range cases {
		if got := Canonicalize(tc.in); got != tc.want {
			t.Fatalf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanToken(t *testing.T) {
	cases := []struct{ in, want string }{
		{"}hello", "hello"},
		{"hello|", "hello"},
		{"{hello}", "hello"},
		{" | hello | ", "hello"},
		{"}}", ""},
	}
	for _, tc := range cases {
		if got := CleanToken(tc.in); got != tc.want {
			t.Fatalf("CleanToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
