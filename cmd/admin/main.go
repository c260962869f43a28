package main

import (
	"os"

	"gorm.io/gorm"

	"ecclesia_backend/internals/cli"
	"ecclesia_backend/internals/configs"
)

func main() {
	configs.LoadEnv()

	var db *gorm.DB
	opts := &cli.RootOptions{
		OpenDB: func() *gorm.DB {
			if db == nil {
				db = configs.InitCLIDB()
			}
			return db
		},
		Config: &configs.App,
	}
	if err := cli.NewRootCommand(opts).Execute(); err != nil {
		os.Exit(1)
	}
}
