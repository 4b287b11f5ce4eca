package repository

import (
	"fmt"
	"strings"

	"github.com/gopaska/lookbot/internal/domain"
)

// buildFindQuery compiles a filter into SQL: for each dimension with a
// non-empty selection the item's value must be one of the selected keys
// (= ANY), and the per-dimension constraints are ANDed. Dimensions with no
// selection impose no constraint, so an all-empty filter matches every row.
func buildFindQuery(filter *domain.FilterState, limit int) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`SELECT file_unique_id, file_id, message_id, captured_at,
		category, style, color, season, raw_description, stored_at
	FROM items`)

	var conds []string
	if filter != nil {
		for _, d := range domain.Dimensions {
			keys := filter.Keys(d)
			if len(keys) == 0 {
				continue
			}
			args = append(args, keys)
			conds = append(conds, fmt.Sprintf("%s = ANY($%d)", d.Key(), len(args)))
		}
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	args = append(args, limit)
	fmt.Fprintf(&sb, " ORDER BY captured_at DESC LIMIT $%d", len(args))

	return sb.String(), args
}
