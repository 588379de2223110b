package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/doctrina/lexicon"
)

func TestExtract(t *testing.T) {
	extractor := NewExtractor(nil)

	t.Run("doctrine publication", func(t *testing.T) {
		meta := extractor.Extract(
			"AFI 44-102 Medical Care Management",
			"afi44-102.pdf",
			"This instruction, effective 12 July 2021, governs access to care for patients.",
		)
		assert.Equal(t, "AFI 44-102", meta.Pub)
		assert.Equal(t, "clinical", meta.Domain)
		assert.Equal(t, DocTypePublication, meta.DocType)
		assert.Equal(t, "12 July 2021", meta.Effective)
	})

	t.Run("pub falls back to source id", func(t *testing.T) {
		meta := extractor.Extract("Medical Readiness", "dafi36-2110.pdf", "")
		assert.Equal(t, "DAFI 36-2110", meta.Pub)
	})

	t.Run("no pub reference", func(t *testing.T) {
		meta := extractor.Extract("MSC Mentor Guide", "mentor_guide.pdf", "advice for new officers")
		assert.Empty(t, meta.Pub)
		assert.Equal(t, DocTypeGuide, meta.DocType)
	})

	t.Run("domain defaults to general", func(t *testing.T) {
		meta := extractor.Extract("Untitled", "doc.txt", "nothing recognizable")
		assert.Equal(t, lexicon.GeneralDomain, meta.Domain)
	})

	t.Run("title date wins over body date", func(t *testing.T) {
		meta := extractor.Extract("Policy Update 3 March 2020", "p.pdf", "revised 1 January 2024")
		assert.Equal(t, "3 March 2020", meta.Effective)
	})

	t.Run("bare year accepted", func(t *testing.T) {
		meta := extractor.Extract("Annual Reference 2023", "r.pdf", "")
		assert.Equal(t, "2023", meta.Effective)
	})

	t.Run("date scan is bounded", func(t *testing.T) {
		body := strings.Repeat("x ", dateScanLimit) + " 12 July 2021"
		meta := extractor.Extract("No Date Title", "d.pdf", body)
		assert.Empty(t, meta.Effective)
	})

	t.Run("deterministic", func(t *testing.T) {
		a := extractor.Extract("AFI 41-210 TRICARE Operations", "x.pdf", "text 2019")
		b := extractor.Extract("AFI 41-210 TRICARE Operations", "x.pdf", "text 2019")
		assert.Equal(t, a, b)
	})
}

func TestInferDocType(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"MSC Mentor Guide", DocTypeGuide},
		{"Leave Policy Memo", DocTypePolicy},
		{"Quick Reference Card", DocTypeReference},
		{"Assignment FAQ", DocTypeFAQ},
		{"AFI 44-102", DocTypePublication},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, inferDocType(tt.title))
		})
	}
}
