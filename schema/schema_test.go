package schema

import (
	"strings"
	"testing"

	"github.com/shrek82/gocrud/dialect"
	"github.com/shrek82/gocrud/model"
)

type User struct {
	ID   int64 `crud:"id"`
	Name string
}

func (u *User) TableName() string { return "users" }

func mustDialect(t *testing.T, name string) dialect.Dialect {
	t.Helper()
	d, ok := dialect.Get(name)
	if !ok {
		t.Fatalf("%s dialect not registered", name)
	}
	return d
}

func userFields() []*model.Field {
	return []*model.Field{
		{Name: "ID", Column: "id", Index: 0, IsID: true},
		{Name: "Name", Column: "name", Index: 1},
	}
}

func TestBuildPostgres(t *testing.T) {
	d := mustDialect(t, "postgres")
	s, err := Build("users", userFields(), d)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cases := map[string]string{
		"select":       "SELECT users.id, users.name FROM users",
		"select by id": "SELECT users.id, users.name FROM users WHERE users.id = $1",
		"insert":       "INSERT INTO users (id, name) VALUES ($1, $2)",
		"update":       "UPDATE users SET name = $1 WHERE id = $2",
		"delete":       "DELETE FROM users WHERE id = $1",
	}
	got := map[string]string{
		"select":       s.SelectSQL(),
		"select by id": s.SelectByIDSQL(),
		"insert":       s.InsertSQL(),
		"update":       s.UpdateSQL(),
		"delete":       s.DeleteSQL(),
	}
	for name, want := range cases {
		if got[name] != want {
			t.Errorf("%s: got %q, want %q", name, got[name], want)
		}
	}
}

func TestBuildSQLite(t *testing.T) {
	d := mustDialect(t, "sqlite3")
	s, err := Build("users", userFields(), d)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got, want := s.InsertSQL(), "INSERT INTO users (id, name) VALUES (?, ?)"; got != want {
		t.Errorf("insert: got %q, want %q", got, want)
	}
	if got, want := s.UpdateSQL(), "UPDATE users SET name = ? WHERE id = ?"; got != want {
		t.Errorf("update: got %q, want %q", got, want)
	}
	if got, want := s.DeleteSQL(), "DELETE FROM users WHERE id = ?"; got != want {
		t.Errorf("delete: got %q, want %q", got, want)
	}
}

func TestPlaceholderCounts(t *testing.T) {
	fields := []*model.Field{
		{Column: "id", IsID: true},
		{Column: "name"},
		{Column: "email"},
		{Column: "age"},
	}
	n := len(fields)

	t.Run("Anonymous", func(t *testing.T) {
		s, err := Build("users", fields, mustDialect(t, "mysql"))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if got := strings.Count(s.InsertSQL(), "?"); got != n {
			t.Errorf("insert placeholders: got %d, want %d", got, n)
		}
		if got := strings.Count(s.UpdateSQL(), "?"); got != n {
			t.Errorf("update placeholders: got %d, want %d", got, n)
		}
		if got := strings.Count(s.DeleteSQL(), "?"); got != 1 {
			t.Errorf("delete placeholders: got %d, want 1", got)
		}
		if got := strings.Count(s.SelectByIDSQL(), "?"); got != 1 {
			t.Errorf("select-by-id placeholders: got %d, want 1", got)
		}
		if got := strings.Count(s.SelectSQL(), "?"); got != 0 {
			t.Errorf("select placeholders: got %d, want 0", got)
		}
	})

	t.Run("Numbered", func(t *testing.T) {
		s, err := Build("users", fields, mustDialect(t, "postgres"))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if got := strings.Count(s.InsertSQL(), "$"); got != n {
			t.Errorf("insert placeholders: got %d, want %d", got, n)
		}
		if got := strings.Count(s.UpdateSQL(), "$"); got != n {
			t.Errorf("update placeholders: got %d, want %d", got, n)
		}
		if !strings.HasSuffix(s.UpdateSQL(), "WHERE id = $4") {
			t.Errorf("update should bind identifier last: %q", s.UpdateSQL())
		}
	})
}

func TestColumnsInvariants(t *testing.T) {
	s, err := Build("users", userFields(), mustDialect(t, "sqlite3"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(s.Columns) != 2 {
		t.Errorf("Expected 2 columns, got %d", len(s.Columns))
	}
	seen := 0
	for _, c := range s.Columns {
		if c == s.IDColumn {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("Identifier column should appear exactly once in Columns, got %d", seen)
	}
}

func TestBuildDeterministic(t *testing.T) {
	d := mustDialect(t, "postgres")
	s1, err := Build("users", userFields(), d)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	s2, err := Build("users", userFields(), d)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if s1.SelectSQL() != s2.SelectSQL() || s1.InsertSQL() != s2.InsertSQL() ||
		s1.UpdateSQL() != s2.UpdateSQL() || s1.DeleteSQL() != s2.DeleteSQL() {
		t.Errorf("Build is not deterministic")
	}
}

func TestBuildNoFields(t *testing.T) {
	d := mustDialect(t, "sqlite3")
	for i := 0; i < 3; i++ {
		if _, err := Build("users", nil, d); err != ErrNoFields {
			t.Errorf("Expected ErrNoFields, got %v", err)
		}
	}
}

func TestBuildDefaultsFirstID(t *testing.T) {
	fields := []*model.Field{
		{Column: "code"},
		{Column: "name"},
	}
	s, err := Build("items", fields, mustDialect(t, "sqlite3"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s.IDColumn != "code" {
		t.Errorf("Expected first column as identifier, got %q", s.IDColumn)
	}
}

func TestForCaches(t *testing.T) {
	d := mustDialect(t, "sqlite3")
	s1, err := For(&User{}, d)
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	s2, err := For(&User{}, d)
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if s1 != s2 {
		t.Errorf("Schema should be cached and return same pointer")
	}

	// A different dialect gets its own entry.
	s3, err := For(&User{}, mustDialect(t, "postgres"))
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if s3 == s1 {
		t.Errorf("Schemas for different dialects should be distinct")
	}
	if s3.InsertSQL() == s1.InsertSQL() {
		t.Errorf("Expected different placeholder styles, both were %q", s1.InsertSQL())
	}
}
