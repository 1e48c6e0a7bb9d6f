package restaurant

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/thenoetrevino/salesboard/internal/cli/request"
	"github.com/thenoetrevino/salesboard/internal/cli/styles"
	"github.com/thenoetrevino/salesboard/internal/models"
)

func ids(restaurants []models.Restaurant) []string {
	out := make([]string, len(restaurants))
	for i, r := range restaurants {
		out[i] = r.ID
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func writeList(w io.Writer, restaurants []models.Restaurant) {
	if len(restaurants) == 0 {
		fmt.Fprintln(w, "No restaurants found")
		return
	}
	fmt.Fprintf(w, "Found %d restaurants:\n\n", len(restaurants))
	for _, r := range restaurants {
		fmt.Fprintf(w, "  %s %s %s  %s\n",
			styles.SubtitleStyle.Render(shortID(r.ID)),
			styles.RenderStatusChip(r.Status),
			r.Name,
			styles.SubtitleStyle.Render(r.CityLabel()),
		)
	}
}

func writeCard(w io.Writer, r models.Restaurant, threads []*models.Comment) {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(r.Name))
	content.WriteString("  ")
	content.WriteString(styles.RenderStatusChip(r.Status))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(r.ID))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("%s  %s\n",
		styles.Field("City", r.CityLabel()),
		styles.Field("Target", fmt.Sprintf("%d/week", r.BDRTargetPerWeek))))

	if r.Description != "" {
		content.WriteString(styles.SectionStyle.Render("Description"))
		content.WriteString("\n")
		for _, line := range strings.Split(r.Description, "\n") {
			content.WriteString("  " + styles.ValueStyle.Render(line) + "\n")
		}
	}

	if len(r.AssignedBDRs) > 0 {
		content.WriteString(styles.SectionStyle.Render("BDRs"))
		content.WriteString("\n")
		for _, b := range r.AssignedBDRs {
			content.WriteString("  • " + b.Name + " " + styles.SubtitleStyle.Render(b.ID) + "\n")
		}
	}

	if len(threads) > 0 {
		content.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Comments (%d)", r.CommentsCount)))
		content.WriteString("\n")
		request.WriteThreads(&content, threads, 1)
	}

	creator := r.CreatorName
	if creator == "" {
		creator = "-"
	}
	content.WriteString("\n" + styles.SubtitleStyle.Render(fmt.Sprintf("Created %s by %s",
		r.CreatedAt.Format(time.DateOnly), creator)))

	fmt.Fprintln(w, styles.RenderCard(content.String()))
}
