package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"earn_webapp/internal/db"
)

func main() {
	apply := flag.Bool("apply", false, "apply migrations (default lists them)")
	flag.Parse()

	if !*apply {
		names, err := db.MigrationNames()
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	applied, err := db.Migrate(context.Background(), pool)
	if err != nil {
		log.Fatal(err)
	}
	for _, name := range applied {
		fmt.Printf("applied %s\n", name)
	}
}
