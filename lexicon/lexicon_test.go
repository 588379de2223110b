package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexiconMatch(t *testing.T) {
	lex := Default()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"readiness keyword", "What are the deployment requirements for MSC officers?", "readiness"},
		{"case insensitive", "MEDICAL MATERIEL accountability procedures", "logistics"},
		{"personnel keyword", "When is my OPR due?", "personnel"},
		{"finance keyword", "How do I file a travel voucher?", "finance"},
		{"no match falls back to general", "What color is the sky?", GeneralDomain},
		{"empty text", "", GeneralDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.Match(tt.text))
		})
	}
}

func TestLexiconFirstMatchWins(t *testing.T) {
	lex := Lexicon{
		{Domain: "alpha", Keywords: []string{"shared"}},
		{Domain: "beta", Keywords: []string{"shared"}},
	}
	assert.Equal(t, "alpha", lex.Match("a shared keyword"))
}

func TestFindPub(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{"title match", []string{"AFI 44-102 Medical Care Management", "doc.pdf"}, "AFI 44-102"},
		{"falls back to source id", []string{"Medical Care", "dafi36-2110.pdf"}, "DAFI 36-2110"},
		{"lowercase and compact", []string{"afi44-102"}, "AFI 44-102"},
		{"dotted dha form", []string{"DHA-PI 6025.34 Guidance"}, "DHA-PI 6025.34"},
		{"dotted suffix", []string{"DAFMAN 41-210.1"}, "DAFMAN 41-210.1"},
		{"no match", []string{"Mentor Guide 2024", "guide.pdf"}, ""},
		{"plain number ranges are not pubs", []string{"see pages 10-20"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindPub(tt.fields...))
		})
	}
}

func TestFindAllPubs(t *testing.T) {
	text := "Per AFI 44-102 and afi 41-210, see also AFI 44-102."
	assert.Equal(t, []string{"AFI 44-102", "AFI 41-210"}, FindAllPubs(text))
}

func TestCanonicalize(t *testing.T) {
	assert.Equal(t,
		"What does AFI 44-102 say about access to care?",
		Canonicalize("What does afi44-102 say about access to care?"))
	assert.Equal(t, "no references here", Canonicalize("no references here"))
}

func TestIsDoctrine(t *testing.T) {
	assert.True(t, IsDoctrine("", "AFI 44-102 Medical Care Management"))
	assert.False(t, IsDoctrine("MSC Mentor Guide", "mentor_guide.pdf"))
}

func TestAcronymsExpand(t *testing.T) {
	acr := DefaultAcronyms()
	assert.Equal(t, "air force instruction", acr.Expand("afi"))
	assert.Equal(t, "", acr.Expand("zzz"))
}
