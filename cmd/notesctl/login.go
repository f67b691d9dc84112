package main

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"notesnest-web/internal/repository"
	"notesnest-web/internal/service"
	"notesnest-web/pkg/hash"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange the admin password for a token and print it",
		Long: `login posts the admin password to the notes API and prints the issued
token, ready for NOTESNEST_ADMIN_TOKEN. Without --password the password is
read from the first line of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			repo := repository.NewAuthRepository(a.apiURL(cmd), &http.Client{Timeout: a.env.Timeout})
			auth := service.NewAuthService(repo, service.AuthModeToken, "", a.logger)

			cred, err := auth.Login(cmd.Context(), password)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cred.Value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Admin password")
	return cmd
}

func newHashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret <secret>",
		Short: "Print the bcrypt hash of a shared admin secret for ADMIN_SECRET_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := hash.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}
}
