package composer

import (
	"strings"

	"github.com/septivank/danube-levels-bot/internal/model"
)

// Compose renders one "<station> <value>/<delta>" line per reading. Every line,
// including the last, ends with a newline.
func Compose(readings model.ReadingSet) string {
	var b strings.Builder
	for _, r := range readings {
		b.WriteString(r.Station)
		b.WriteByte(' ')
		b.WriteString(r.Value)
		b.WriteByte('/')
		b.WriteString(r.Delta)
		b.WriteByte('\n')
	}
	return b.String()
}
