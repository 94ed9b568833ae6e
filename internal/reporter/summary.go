package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/aleister1102/sitemapfinder/internal/compression"
	"github.com/aleister1102/sitemapfinder/internal/models"
)

// Summary aggregates a finished batch.
type Summary struct {
	Processed         int `json:"processed"`
	TotalSitemaps     int `json:"total_sitemaps"`
	CompressedDomains int `json:"compressed_domains"` // domains with at least one compressed sitemap
	NestedURLs        int `json:"nested_urls"`
	Succeeded         int `json:"succeeded"`
	Failed            int `json:"failed"`
}

// BuildSummary computes the batch summary in a single pass.
func BuildSummary(results []models.DomainResult) Summary {
	s := Summary{Processed: len(results)}
	for _, r := range results {
		s.TotalSitemaps += len(r.Sitemaps)
		s.NestedURLs += len(r.NestedURLs)
		if r.IsSuccess() {
			s.Succeeded++
		} else {
			s.Failed++
		}
		for _, u := range r.Sitemaps {
			if compression.IsCompressed(u) {
				s.CompressedDomains++
				break
			}
		}
	}
	return s
}

// RenderSummary prints the summary block.
func RenderSummary(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("\n📊 SUMMARY\n")
	b.WriteString(strings.Repeat("━", 40) + "\n")
	fmt.Fprintf(&b, "✓ Processed:       %d domains\n", s.Processed)
	fmt.Fprintf(&b, "📄 Total sitemaps:   %d\n", s.TotalSitemaps)
	fmt.Fprintf(&b, "🗜️  Compressed maps: %d domains\n", s.CompressedDomains)
	fmt.Fprintf(&b, "🔗 URLs extracted:  %d\n", s.NestedURLs)
	fmt.Fprintf(&b, "✅ Success:         %d domains\n", s.Succeeded)
	fmt.Fprintf(&b, "❌ Errors:          %d domains\n", s.Failed)

	_, err := io.WriteString(w, b.String())
	return err
}
