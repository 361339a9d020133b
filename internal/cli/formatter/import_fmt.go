package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pulse/internal/contract"
)

// FormatImportResult renders the record counts of a finished import.
func FormatImportResult(path string, res *contract.ImportResult) string {
	var b strings.Builder
	verb := "Imported"
	if res.Replaced {
		verb = "Replaced snapshot with"
	}
	b.WriteString(StyleGreen.Render(fmt.Sprintf("%s %s", verb, path)) + "\n\n")
	b.WriteString(RenderColumns([]Column{{Title: "RECORDS"}, {Title: "COUNT", Right: true}}, [][]string{
		{"portfolios", fmt.Sprint(res.Portfolios)},
		{"sites", fmt.Sprint(res.Sites)},
		{"projects", fmt.Sprint(res.Projects)},
		{"employees", fmt.Sprint(res.Employees)},
		{"tasks", fmt.Sprint(res.Tasks)},
		{"qc tasks", fmt.Sprint(res.QCTasks)},
		{"hours", fmt.Sprint(res.Hours)},
	}))
	return b.String()
}
