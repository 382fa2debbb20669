package aggregate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/template"
)

// Header is the CSV header for a line-values export.
const Header = "line_id,code,label,statement,kind,value,contributors"

// WriteCSV exports every line value in template order, one row per line,
// with the contributing account codes semicolon-separated for audit.
func (r *Result) WriteCSV(w io.Writer, tpl *template.Template) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, lv := range r.Values() {
		ln, _ := tpl.Line(lv.LineID)
		row := []string{
			lv.LineID,
			ln.Code,
			ln.Label,
			string(ln.Statement),
			string(ln.Kind),
			lv.Value.String(),
			strings.Join(lv.Contributors, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing line %s: %w", lv.LineID, err)
		}
	}
	return cw.Error()
}
