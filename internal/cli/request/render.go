package request

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/thenoetrevino/salesboard/internal/cli/styles"
	"github.com/thenoetrevino/salesboard/internal/models"
)

func ids(requests []models.Request) []string {
	out := make([]string, len(requests))
	for i, r := range requests {
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

func writeLine(w io.Writer, r models.Request) {
	fmt.Fprintf(w, "  %s %s %s  %s\n",
		styles.SubtitleStyle.Render(shortID(r.ID)),
		styles.RenderStatusChip(r.Status),
		r.Title,
		styles.SubtitleStyle.Render(strings.ToLower(string(r.RequestType))+" · "+r.CityLabel()),
	)
}

func writeList(w io.Writer, requests []models.Request) {
	if len(requests) == 0 {
		fmt.Fprintln(w, "No requests found")
		return
	}
	fmt.Fprintf(w, "Found %d requests:\n\n", len(requests))
	for _, r := range requests {
		writeLine(w, r)
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func writeCard(w io.Writer, r models.Request, allowed []models.Status, threads []*models.Comment) {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(r.Title))
	content.WriteString("  ")
	content.WriteString(styles.RenderStatusChip(r.Status))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(r.ID))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("%s  %s\n",
		styles.Field("Type", strings.ToLower(string(r.RequestType))),
		styles.Field("City", r.CityLabel())))
	content.WriteString(fmt.Sprintf("%s  %s\n",
		styles.Field("Requester", r.RequesterName),
		styles.Field("Company", orDash(r.Company))))
	volume := "-"
	if r.Volume != nil {
		volume = fmt.Sprintf("%d", *r.Volume)
	}
	content.WriteString(fmt.Sprintf("%s  %s  %s\n",
		styles.Field("Volume", volume),
		styles.Field("Answer by", formatDate(r.NeedAnswerBy)),
		styles.Field("Delivery", formatDate(r.DeliveryDate))))

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

	if len(allowed) > 0 {
		labels := make([]string, len(allowed))
		for i, s := range allowed {
			labels[i] = s.Label()
		}
		content.WriteString("\n" + styles.Field("Can move to", strings.Join(labels, ", ")) + "\n")
	}

	if len(threads) > 0 {
		content.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Comments (%d)", r.CommentsCount)))
		content.WriteString("\n")
		WriteThreads(&content, threads, 1)
	}

	content.WriteString("\n" + styles.SubtitleStyle.Render(fmt.Sprintf("Created %s by %s, updated %s",
		r.CreatedAt.Format(time.DateOnly), orDash(r.CreatorName), r.UpdatedOrCreated().Format(time.DateOnly))))

	fmt.Fprintln(w, styles.RenderCard(content.String()))
}

// WriteThreads prints comments with replies indented under their parent
func WriteThreads(w io.Writer, threads []*models.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range threads {
		body := c.Content
		if c.DeletedAt != nil {
			body = styles.SubtitleStyle.Render("(deleted)")
		}
		edited := ""
		if c.IsEdited {
			edited = styles.SubtitleStyle.Render(" (edited)")
		}
		fmt.Fprintf(w, "%s%s %s%s\n", indent,
			styles.LabelStyle.Render(orDash(c.UserName)),
			styles.SubtitleStyle.Render(c.CreatedAt.Format("2006-01-02 15:04")+" "+shortID(c.ID)),
			edited)
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(w, "%s  %s\n", indent, line)
		}
		WriteThreads(w, c.Replies, depth+1)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
