package formatter

import (
	"fmt"
	"strings"

	"github.com/projectpulse/pulse/internal/derive"
)

// FormatSummary renders the executive summary block.
func FormatSummary(s derive.Summary) string {
	var b strings.Builder

	b.WriteString(Header("Executive Summary"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  %d total, %d completed\n",
		Bold("Projects:"), s.TotalProjects, s.CompletedProjects))
	b.WriteString(fmt.Sprintf("%s   %d\n", Bold("Members:"), s.TotalMembers))
	b.WriteString(fmt.Sprintf("%s  %.1fh committed (projects with open issues excluded)\n",
		Bold("Capacity:"), s.TotalAllocatedHours))

	b.WriteString(fmt.Sprintf("%s    %s  %s  %s\n",
		Bold("Health:"),
		StyleGreen.Render(fmt.Sprintf("%d green", s.RAGCounts[derive.RAGGreen])),
		StyleYellow.Render(fmt.Sprintf("%d yellow", s.RAGCounts[derive.RAGYellow])),
		StyleRed.Render(fmt.Sprintf("%d red", s.RAGCounts[derive.RAGRed]))))

	b.WriteString(fmt.Sprintf("%s    pace %s · capacity %s · adoption %s\n",
		Bold("Trends:"),
		s.KeyTrends.DeliveryPace, s.KeyTrends.CapacityOutlook, s.KeyTrends.AdoptionMomentum))

	if len(s.Health) > 0 {
		b.WriteString("\n")
		headers := []string{"PROJECT", "STATUS", "HEALTH"}
		rows := make([][]string, 0, len(s.Health))
		for _, h := range s.Health {
			rows = append(rows, []string{
				Bold(h.Name),
				StatusPill(h.Status),
				RAGIndicator(h.RAG),
			})
		}
		b.WriteString(RenderTable(headers, rows))
		b.WriteString("\n")
	}
	return b.String()
}
