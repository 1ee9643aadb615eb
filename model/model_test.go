package model

import (
	"testing"
)

type TestUser struct {
	ID       int64  `crud:"id column:id"`
	UserName string `crud:"column:user_name"`
	Email    string
	Age      int
	IgnoreMe string `crud:"-"`
}

type FirstFieldID struct {
	Code string
	Name string
}

type NamedTable struct {
	ID   int64 `crud:"id"`
	Name string
}

func (n *NamedTable) TableName() string { return "renamed" }

func TestGetModel(t *testing.T) {
	t.Run("BasicModel", func(t *testing.T) {
		m, err := GetModel(&TestUser{})
		if err != nil {
			t.Fatalf("Failed to get model: %v", err)
		}

		if m.TableName != "test_user" {
			t.Errorf("Expected table name 'test_user', got '%s'", m.TableName)
		}

		if len(m.Fields) != 4 { // ID, UserName, Email, Age (IgnoreMe is skipped)
			t.Errorf("Expected 4 fields, got %d", len(m.Fields))
		}

		if m.IDField == nil || m.IDField.Name != "ID" {
			t.Fatalf("Expected ID as identifier field")
		}
		if m.IDField.Column != "id" {
			t.Errorf("Expected column name 'id', got '%s'", m.IDField.Column)
		}

		if _, ok := m.FieldMap["user_name"]; !ok {
			t.Errorf("Field 'user_name' should exist in FieldMap")
		}
		if _, ok := m.FieldMap["email"]; !ok {
			t.Errorf("Field 'email' should exist in FieldMap")
		}
	})

	t.Run("FirstFieldBecomesID", func(t *testing.T) {
		m, err := GetModel(&FirstFieldID{})
		if err != nil {
			t.Fatalf("Failed to get model: %v", err)
		}
		if m.IDField == nil || m.IDField.Column != "code" {
			t.Errorf("Expected first field 'code' to default as identifier, got %+v", m.IDField)
		}
	})

	t.Run("TableNameOverride", func(t *testing.T) {
		m, err := GetModel(&NamedTable{})
		if err != nil {
			t.Fatalf("Failed to get model: %v", err)
		}
		if m.TableName != "renamed" {
			t.Errorf("Expected table name 'renamed', got '%s'", m.TableName)
		}
	})

	t.Run("InvalidModel", func(t *testing.T) {
		if _, err := GetModel(123); err == nil {
			t.Errorf("Expected error for non-struct type, got nil")
		}
		if _, err := GetModel(nil); err == nil {
			t.Errorf("Expected error for nil value, got nil")
		}
	})
}

func TestModelCache(t *testing.T) {
	m1, _ := GetModel(&TestUser{})
	m2, _ := GetModel(&TestUser{})

	if m1 != m2 {
		t.Errorf("Model metadata should be cached and return same pointer")
	}
}

func TestColumns(t *testing.T) {
	m, err := GetModel(&TestUser{})
	if err != nil {
		t.Fatalf("Failed to get model: %v", err)
	}

	cols := m.Columns()
	want := []string{"id", "user_name", "email", "age"}
	if len(cols) != len(want) {
		t.Fatalf("Expected %d columns, got %d", len(want), len(cols))
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("Column %d: expected '%s', got '%s'", i, want[i], cols[i])
		}
	}
}

func TestDescribe(t *testing.T) {
	t.Run("Explicit", func(t *testing.T) {
		m, err := Describe("accounts", []*Field{
			{Column: "account_id", IsID: true},
			{Column: "balance"},
		})
		if err != nil {
			t.Fatalf("Describe failed: %v", err)
		}
		if m.TableName != "accounts" {
			t.Errorf("Expected table 'accounts', got '%s'", m.TableName)
		}
		if m.IDField == nil || m.IDField.Column != "account_id" {
			t.Errorf("Expected 'account_id' as identifier")
		}
	})

	t.Run("DefaultsFirstID", func(t *testing.T) {
		m, err := Describe("things", []*Field{
			{Column: "a"},
			{Column: "b"},
		})
		if err != nil {
			t.Fatalf("Describe failed: %v", err)
		}
		if m.IDField.Column != "a" {
			t.Errorf("Expected first column 'a' as identifier, got '%s'", m.IDField.Column)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		if _, err := Describe("", []*Field{{Column: "a"}}); err == nil {
			t.Errorf("Expected error for empty table name")
		}
		if _, err := Describe("t", []*Field{{Column: "a"}, {Column: "a"}}); err == nil {
			t.Errorf("Expected error for duplicate column")
		}
		if _, err := Describe("t", []*Field{{Column: ""}}); err == nil {
			t.Errorf("Expected error for empty column name")
		}
		if _, err := Describe("t", []*Field{{Column: "a", IsID: true}, {Column: "b", IsID: true}}); err == nil {
			t.Errorf("Expected error for two id columns")
		}
	})
}

func TestParseTag(t *testing.T) {
	cases := []struct {
		in     string
		column string
		id     bool
		skip   bool
	}{
		{"", "", false, false},
		{"-", "", false, true},
		{"id", "", true, false},
		{"pk", "", true, false},
		{"column:user_name", "user_name", false, false},
		{"id column:uid", "uid", true, false},
		{"id;column:uid", "uid", true, false},
		{"id,column:uid", "uid", true, false},
	}

	for _, c := range cases {
		tag := ParseTag(c.in)
		if tag.Column != c.column || tag.ID != c.id || tag.Skip != c.skip {
			t.Errorf("ParseTag(%q) = %+v, want column=%q id=%v skip=%v", c.in, tag, c.column, c.id, c.skip)
		}
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"ID":          "id",
		"User":        "user",
		"UserName":    "user_name",
		"HTTPServer":  "http_server",
		"UserHTTPAPI": "user_httpapi",
	}
	for in, want := range cases {
		if got := camelToSnake(in); got != want {
			t.Errorf("camelToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
