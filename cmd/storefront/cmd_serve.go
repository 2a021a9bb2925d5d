package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/internal/server"
)

// storefront serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}
