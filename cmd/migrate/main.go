package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"creatorum.org/internal/migrate"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("CREATORUM_PG_DSN"), "postgres dsn")
	dir := flag.String("migrations", "migrations", "migrations directory")
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	if *dsn == "" {
		log.Fatal("dsn required (flag -dsn or CREATORUM_PG_DSN)")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	m := migrate.NewManager(db, *dir)

	switch cmd {
	case "up":
		if err := m.Up(ctx); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Println("migrations applied")
	case "down":
		if err := m.Down(ctx); err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		log.Println("last migration rolled back")
	case "status":
		applied, err := m.Status(ctx)
		if err != nil {
			log.Fatalf("migrate status: %v", err)
		}
		if len(applied) == 0 {
			fmt.Println("no migrations applied")
			return
		}
		for _, v := range applied {
			fmt.Println(v)
		}
	default:
		log.Fatalf("unknown command %q (want up, down or status)", cmd)
	}
}
