package db

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be spliced into SQL as a quoted identifier.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// CallProcedure invokes a stored procedure with positional parameters.
// Backend errors are returned unchanged.
func CallProcedure(tx *gorm.DB, name string, params ...any) error {
	stmt, err := routineStatement("CALL", name, len(params))
	if err != nil {
		return err
	}
	return tx.Exec(stmt, params...).Error
}

// CallFunction invokes a set-returning function and scans every row into dest.
func CallFunction(tx *gorm.DB, dest any, name string, params ...any) error {
	stmt, err := routineStatement("SELECT * FROM", name, len(params))
	if err != nil {
		return err
	}
	return tx.Raw(stmt, params...).Scan(dest).Error
}

func routineStatement(verb, name string, arity int) (string, error) {
	if !ValidIdentifier(name) {
		return "", fmt.Errorf("invalid routine name %q", name)
	}
	placeholders := make([]string, arity)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return fmt.Sprintf(`%s "%s"(%s)`, verb, name, strings.Join(placeholders, ", ")), nil
}

// OrderBy is a single sort key for QueryView.
type OrderBy struct {
	Column string
	Desc   bool
}

// ViewQuery describes a read against a view. Where keys are combined with AND
// using equality.
type ViewQuery struct {
	View  string
	Where map[string]any
	Order []OrderBy
	Limit int
}

// QueryView selects rows from a view into dest. View, column and order names
// must be trusted identifiers; anything else is rejected before SQL is issued.
func QueryView(tx *gorm.DB, dest any, q ViewQuery) error {
	if !ValidIdentifier(q.View) {
		return fmt.Errorf("invalid view name %q", q.View)
	}

	keys := make([]string, 0, len(q.Where))
	for key := range q.Where {
		if !ValidIdentifier(key) {
			return fmt.Errorf("invalid view column %q", key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	stmt := tx.Table(q.View)
	for _, key := range keys {
		stmt = stmt.Where(clause.Eq{Column: clause.Column{Name: key}, Value: q.Where[key]})
	}
	for _, order := range q.Order {
		if !ValidIdentifier(order.Column) {
			return fmt.Errorf("invalid order column %q", order.Column)
		}
		stmt = stmt.Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Desc})
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}
	return stmt.Find(dest).Error
}
