package adapters

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscaper はLIKEパターン中のワイルドカードをエスケープします。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applySearch はタイトルまたは本文に対する全文検索条件を追加します。
//
// PostgreSQLではto_tsvector/plainto_tsquery（english設定）を使用します。
// それ以外のドライバーでは、全ての語をタイトルに含むか、全ての語を本文に含む
// エントリーを大文字小文字を区別せずに一致させます。
func applySearch(q *gorm.DB, dialect, search string) *gorm.DB {
	if dialect == "postgres" {
		return q.Where(
			"(to_tsvector('english', entries.title) @@ plainto_tsquery('english', ?) OR "+
				"to_tsvector('english', entries.content) @@ plainto_tsquery('english', ?))",
			search, search,
		)
	}

	terms := strings.Fields(strings.ToLower(search))
	if len(terms) == 0 {
		return q
	}

	titleConds := make([]string, 0, len(terms))
	contentConds := make([]string, 0, len(terms))
	titleArgs := make([]any, 0, len(terms))
	contentArgs := make([]any, 0, len(terms))
	for _, term := range terms {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		titleConds = append(titleConds, `LOWER(entries.title) LIKE ? ESCAPE '\'`)
		contentConds = append(contentConds, `LOWER(entries.content) LIKE ? ESCAPE '\'`)
		titleArgs = append(titleArgs, pattern)
		contentArgs = append(contentArgs, pattern)
	}

	cond := "((" + strings.Join(titleConds, " AND ") + ") OR (" + strings.Join(contentConds, " AND ") + "))"
	return q.Where(cond, append(titleArgs, contentArgs...)...)
}
