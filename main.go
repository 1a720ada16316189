package main

import (
	"flag"
	"log"

	"github.com/lurelab/lurelab-backend/cmd"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run database migrations")
	shouldRunServer := flag.Bool("server", false, "Run the API server")
	shouldRunWorker := flag.Bool("worker", false, "Run the task queue worker")
	shouldRunScheduler := flag.Bool("scheduler", false, "Run the cron job scheduler")
	flag.Parse()

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunServer {
		if err := cmd.RunServer(); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunWorker {
		if err := cmd.RunTaskQueue(); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunScheduler {
		if err := cmd.RunJobScheduler(); err != nil {
			log.Fatal(err)
		}
	}
}
