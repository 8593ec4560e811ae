package query

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// SplitTerms splits a search query into terms on whitespace. Double or single
// quoted phrases are kept as a single term, without their quotes.
func SplitTerms(q string) []string {
	terms := make([]string, 0)

	var (
		current strings.Builder
		quote   rune
	)

	flush := func() {
		if current.Len() > 0 {
			terms = append(terms, current.String())
			current.Reset()
		}
	}

	for _, r := range q {
		switch {
		case quote != 0 && r == quote:
			quote = 0
			flush()
		case quote == 0 && (r == '"' || r == '\''):
			flush()
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	flush()

	return terms
}

// SearchField is a SQL expression matched by a search. Normalize, if set, is
// applied to each term before it is compared with the expression.
type SearchField struct {
	Expr      string
	Normalize func(term string) string
}

func (f SearchField) pattern(term string) string {
	if f.Normalize != nil {
		term = f.Normalize(term)
	}

	return "%" + escapeLike(strings.ToLower(term)) + "%"
}

// Search returns a scope matching every term of the query against at least
// one of the given fields, as a case insensitive substring.
func Search(q string, fields ...SearchField) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		terms := SplitTerms(q)
		if len(terms) == 0 || len(fields) == 0 {
			return db
		}

		for _, term := range terms {
			conditions := make([]string, 0, len(fields))
			args := make([]any, 0, len(fields))

			for _, f := range fields {
				conditions = append(conditions, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, f.Expr))
				args = append(args, f.pattern(term))
			}

			db = db.Where("("+strings.Join(conditions, " OR ")+")", args...)
		}

		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
