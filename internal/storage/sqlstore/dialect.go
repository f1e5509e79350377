package sqlstore

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Dialect captures the differences between the supported SQL backends.
type Dialect struct {
	Name       string // mysql|postgres|sqlite
	DriverName string // name registered with database/sql
	numbered   bool   // $1, $2 placeholders instead of ?
	returning  bool   // INSERT ... RETURNING id instead of LastInsertId
	schema     []string
}

var (
	MySQL = Dialect{
		Name:       "mysql",
		DriverName: "mysql",
		schema:     []string{createVillasMySQL},
	}
	Postgres = Dialect{
		Name:       "postgres",
		DriverName: "pgx",
		numbered:   true,
		returning:  true,
		schema:     []string{createVillasPostgres, createVillasNameIdxPostgres},
	}
	SQLite = Dialect{
		Name:       "sqlite",
		DriverName: "sqlite",
		schema:     []string{createVillasSQLite, createVillasNameIdxSQLite},
	}
)

func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, errors.Errorf("unsupported DB_DRIVER %q", name)
}

// Rebind rewrites ? placeholders for dialects that number them. Queries in this
// package never carry a literal '?' inside strings.
func (d Dialect) Rebind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
