package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"ride-schedule-service/internal/adapters/repositories"
	"ride-schedule-service/internal/config"
	"ride-schedule-service/internal/platform/db"
)

// dbtool initializes the schema and imports problem files.
func main() {
	config.LoadEnv()

	driver := flag.String("driver", config.Get("DB_DRIVER", "postgres"), "database driver: postgres or sqlite")
	seedDir := flag.String("seed", config.Get("SEED_DIR", "in"), "directory of .in problem files to import")
	flag.Parse()

	ctx := context.Background()

	var (
		conn  *sql.DB
		saver repositories.ProblemSaver
		err   error
	)
	switch *driver {
	case "postgres":
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			log.Fatal("DATABASE_URL is required")
		}
		conn, err = db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		saver = repositories.NewSQLProblemRepository(conn)
	case "sqlite":
		conn, err = db.OpenSqlite(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			log.Fatal(err)
		}
		saver = repositories.NewSqliteProblemRepository(conn)
	default:
		log.Fatalf("unknown driver %q", *driver)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, *driver, conn, saver, *seedDir); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, driver string, conn *sql.DB, saver repositories.ProblemSaver, seedDir string) error {
	log.Println("Initializing database schema...")
	var err error
	if driver == "postgres" {
		err = repositories.InitPostgresSchema(ctx, conn)
	} else {
		err = repositories.InitSchema(conn)
	}
	if err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	n, err := repositories.SeedFromDir(ctx, saver, seedDir)
	if err != nil {
		return err
	}
	log.Printf("Seeding complete. problems=%d", n)

	return nil
}
