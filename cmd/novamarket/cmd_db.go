package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/novamarket/config"
	"github.com/shashiranjanraj/novamarket/database/seeders"
	"github.com/shashiranjanraj/novamarket/pkg/database"
	"github.com/shashiranjanraj/novamarket/pkg/migration"
	"github.com/shashiranjanraj/novamarket/pkg/storage"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// novamarket migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.New(database.DB).Run()
	},
}

// novamarket migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(database.DB).Rollback()
	},
}

// novamarket migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// novamarket seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalogue with sample data and images",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		storage.Connect() // seeder stores downloaded images
		fmt.Println("Running seeders…")
		return seeders.RunAll(database.DB)
	},
}
