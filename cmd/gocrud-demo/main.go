// Command gocrud-demo runs a full CRUD round trip against a database.
// By default it uses an in-memory SQLite database, so it works with no
// setup; pass -driver/-dsn to point it at postgres or mysql.
package main

import (
	"flag"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shrek82/gocrud/core"
)

var (
	driverName = flag.String("driver", "sqlite3", "database driver (sqlite3, mysql, postgres)")
	dsn        = flag.String("dsn", ":memory:", "database connection string (DSN)")
)

// User maps to the users table. The identifier is assigned by the
// caller, here a UUID.
type User struct {
	ID    string `crud:"id"`
	Name  string
	Email string
	Age   int
}

func (u *User) TableName() string {
	return "users"
}

func main() {
	flag.Parse()

	db, err := core.Open(*driverName, *dsn, &core.Options{MaxOpenConns: 1})
	if err != nil {
		log.Fatalf("open %s: %v", *driverName, err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&User{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	s, err := db.Schema(&User{})
	if err != nil {
		log.Fatalf("schema: %v", err)
	}
	fmt.Println("insert:", s.InsertSQL())
	fmt.Println("update:", s.UpdateSQL())

	user := &User{
		ID:    uuid.NewString(),
		Name:  "alice",
		Email: "alice@example.com",
		Age:   25,
	}
	if err := db.Create(user); err != nil {
		log.Fatalf("create: %v", err)
	}

	var got User
	found, err := db.ByID(&got, user.ID)
	if err != nil {
		log.Fatalf("by id: %v", err)
	}
	fmt.Printf("found=%v user=%+v\n", found, got)

	got.Name = "alice (renamed)"
	if _, err := db.Update(&got); err != nil {
		log.Fatalf("update: %v", err)
	}

	var users []User
	query := fmt.Sprintf("%s ORDER BY users.name ASC", s.SelectSQL())
	if err := db.Select(&users, query); err != nil {
		log.Fatalf("select: %v", err)
	}
	fmt.Printf("all (%d): %+v\n", len(users), users)

	if _, err := db.Delete(&got); err != nil {
		log.Fatalf("delete: %v", err)
	}

	found, err = db.ByID(&got, user.ID)
	if err != nil {
		log.Fatalf("by id after delete: %v", err)
	}
	fmt.Println("after delete found =", found)
}
