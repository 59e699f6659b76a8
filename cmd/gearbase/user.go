// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firstlight/gearbase/internal/db"
	"github.com/firstlight/gearbase/internal/i18n"
)

var (
	userAddName     string
	userAddRole     string
	userAddPassword string
)

func init() {
	userAddCmd.Flags().StringVar(&userAddName, "name", "", "Display name")
	userAddCmd.Flags().StringVar(&userAddRole, "role", "user", `Role ("admin", "user")`)
	userAddCmd.Flags().StringVar(&userAddPassword, "password", "", "Password (prompted when omitted)")
	userCmd.AddCommand(userAddCmd)
}

// userCmd groups application account management subcommands.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage application accounts",
}

// userAddCmd creates an application account with a bcrypt-hashed password.
var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create an application account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]
		password := userAddPassword
		if password == "" {
			fmt.Print("Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if password == "" {
			return fmt.Errorf("password must not be empty")
		}

		user, err := db.GetStore().CreateUserWithPassword(cmd.Context(), username, userAddName, userAddRole, password)
		if err != nil {
			return err
		}
		fmt.Println(i18n.T("user.created", user.Username))
		return nil
	},
}
