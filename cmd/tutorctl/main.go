package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justute/tutorboard-api/pkg/client"
)

func main() {
	execute()
}

func execute() {
	rootCmd := &cobra.Command{
		Use:   "tutorctl",
		Short: "tutorboard CLI",
	}

	rootCmd.PersistentFlags().String("server", "http://localhost:8080/api", "API base URL")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newAgendaCmd())
	rootCmd.AddCommand(newCalendarCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient(cmd *cobra.Command) *client.Client {
	server, _ := cmd.Flags().GetString("server")
	return client.New(server, client.WithTokenStore(client.NewFileTokenStore(tokenPath())))
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tutorboard", "tokens.json")
}
