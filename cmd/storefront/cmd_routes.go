package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// storefront route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		r := router.New()
		if err := routes.RegisterAPI(r, database.DB); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		for _, route := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", route.Method, route.Path, route.Name)
		}
		return w.Flush()
	},
}
