// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package lexicon holds the corpus-specific vocabulary shared by the metadata
// extractor and the query router: the domain keyword table, the publication
// reference pattern, and the acronym expansion table.
//
// The tables here are tuning data, not an architectural contract. Every
// consumer accepts them as values, so deployments indexing a different corpus
// can supply their own.
package lexicon

import "strings"

// GeneralDomain is the fallback domain assigned when no keyword matches.
// It matches everything at retrieval time and never filters candidates out.
const GeneralDomain = "general"

// DomainKeywords maps one domain tag to the keywords that select it.
type DomainKeywords struct {
	Domain   string
	Keywords []string
}

// Lexicon is an ordered domain keyword table. Order matters: the first
// matching domain wins.
type Lexicon []DomainKeywords

// Default returns the domain keyword table tuned for the medical service
// corps policy corpus.
func Default() Lexicon {
	return Lexicon{
		{Domain: "readiness", Keywords: []string{
			"readiness", "deployment", "deploy", "mobilization", "utc", "contingency",
		}},
		{Domain: "logistics", Keywords: []string{
			"logistics", "medical materiel", "equipment", "supply chain", "war reserve",
		}},
		{Domain: "personnel", Keywords: []string{
			"assignment", "promotion", "evaluation", "opr", "epb", "career field", "manning",
		}},
		{Domain: "education", Keywords: []string{
			"education", "training", "course", "cme", "certification", "residency",
		}},
		{Domain: "finance", Keywords: []string{
			"budget", "finance", "funding", "pay", "entitlement", "travel voucher", "jtr",
		}},
		{Domain: "clinical", Keywords: []string{
			"patient", "clinic", "medical care", "access to care", "tricare", "credentialing", "privileging",
		}},
	}
}

// Match scans text for the first matching domain keyword and returns its
// domain tag. The search is a case-insensitive substring match; the first
// entry whose keyword appears wins. Returns GeneralDomain when nothing
// matches.
func (l Lexicon) Match(text string) string {
	lowered := strings.ToLower(text)
	for _, entry := range l {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lowered, keyword) {
				return entry.Domain
			}
		}
	}
	return GeneralDomain
}

// Domains returns the domain tags in table order, excluding GeneralDomain.
func (l Lexicon) Domains() []string {
	domains := make([]string, 0, len(l))
	for _, entry := range l {
		domains = append(domains, entry.Domain)
	}
	return domains
}
