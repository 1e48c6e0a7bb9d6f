// Package report summarizes the board as markdown
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// Item is one request called out by the report
type Item struct {
	ID           string
	Title        string
	Company      string
	Status       models.Status
	DaysOld      int
	NeedAnswerBy *time.Time
}

// Summary is the aggregated state of a set of requests
type Summary struct {
	GeneratedAt    time.Time
	StaleAfterDays int
	Total          int
	ByStatus       map[models.Status]int
	ByType         map[models.RequestType]int
	Overdue        []Item
	Stale          []Item
}

// DaysOld returns whole days between created and now, never negative
func DaysOld(created, now time.Time) int {
	if created.IsZero() || now.Before(created) {
		return 0
	}
	return int(now.Sub(created).Hours() / 24)
}

// Build aggregates requests as of now. A request is overdue when its
// need-answer date has passed and stale when it is older than staleAfterDays;
// done requests are neither.
func Build(requests []models.Request, now time.Time, staleAfterDays int) Summary {
	if staleAfterDays <= 0 {
		staleAfterDays = models.DefaultStaleAfterDays
	}

	s := Summary{
		GeneratedAt:    now,
		StaleAfterDays: staleAfterDays,
		Total:          len(requests),
		ByStatus:       make(map[models.Status]int, len(models.BoardStatuses)),
		ByType:         make(map[models.RequestType]int, len(models.RequestTypes)),
	}

	for _, r := range requests {
		status := models.NormalizeStatus(string(r.Status))
		s.ByStatus[status]++
		s.ByType[r.RequestType]++

		if status == models.StatusDone {
			continue
		}

		item := Item{
			ID:           r.ID,
			Title:        r.Title,
			Company:      r.Company,
			Status:       status,
			DaysOld:      DaysOld(r.CreatedAt, now),
			NeedAnswerBy: r.NeedAnswerBy,
		}
		if r.NeedAnswerBy != nil && r.NeedAnswerBy.Before(now) {
			s.Overdue = append(s.Overdue, item)
		}
		if item.DaysOld > staleAfterDays {
			s.Stale = append(s.Stale, item)
		}
	}

	sort.SliceStable(s.Overdue, func(i, j int) bool {
		return s.Overdue[i].NeedAnswerBy.Before(*s.Overdue[j].NeedAnswerBy)
	})
	sort.SliceStable(s.Stale, func(i, j int) bool {
		return s.Stale[i].DaysOld > s.Stale[j].DaysOld
	})
	return s
}

// Markdown renders s as a markdown document
func Markdown(s Summary) string {
	var b strings.Builder

	b.WriteString("# Request board report\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n\n", s.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "**%d** requests in total.\n\n", s.Total)

	b.WriteString("## By status\n\n| Status | Count |\n|---|---|\n")
	for _, status := range models.BoardStatuses {
		fmt.Fprintf(&b, "| %s | %d |\n", status.Label(), s.ByStatus[status])
	}

	b.WriteString("\n## By type\n\n| Type | Count |\n|---|---|\n")
	for _, t := range models.RequestTypes {
		fmt.Fprintf(&b, "| %s | %d |\n", t, s.ByType[t])
	}

	fmt.Fprintf(&b, "\n## Overdue (%d)\n\n", len(s.Overdue))
	if len(s.Overdue) == 0 {
		b.WriteString("Nothing overdue.\n")
	}
	for _, it := range s.Overdue {
		fmt.Fprintf(&b, "- **%s**%s, due %s (%s)\n",
			escape(it.Title), company(it), it.NeedAnswerBy.Format("2006-01-02"), it.Status.Label())
	}

	fmt.Fprintf(&b, "\n## Stale, older than %d days (%d)\n\n", s.StaleAfterDays, len(s.Stale))
	if len(s.Stale) == 0 {
		b.WriteString("Nothing stale.\n")
	}
	for _, it := range s.Stale {
		fmt.Fprintf(&b, "- **%s**%s, %d days old (%s)\n",
			escape(it.Title), company(it), it.DaysOld, it.Status.Label())
	}

	return b.String()
}

func company(it Item) string {
	if it.Company == "" {
		return ""
	}
	return " for " + escape(it.Company)
}

var markdownEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "|", `\|`, "`", "\\`")

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
