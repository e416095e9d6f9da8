package main

import (
	"github.com/trezcool/ratiba/storage/database"
)

func (cli *commandLine) migrate(args []string) error {
	if len(args) > 0 && args[0] == "down" {
		return database.MigrateDown(cli.db)
	}
	return database.Migrate(cli.db)
}
