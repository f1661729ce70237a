package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate against the tutorboard API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remember, _ := cmd.Flags().GetBool("remember")
			password, _ := cmd.Flags().GetString("password")

			if password == "" {
				fmt.Fprint(os.Stderr, "password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			c := newClient(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			user, err := c.Login(ctx, args[0], password, remember)
			if err != nil {
				return err
			}

			fmt.Printf("logged in as %s (%s)\n", user.FullName, user.Email)
			return nil
		},
	}

	cmd.Flags().Bool("remember", false, "request a long-lived session")
	cmd.Flags().String("password", "", "password (prompted when omitted)")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := c.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}
