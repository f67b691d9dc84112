package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"notesnest-web/internal/config"
	"notesnest-web/internal/domain"
	"notesnest-web/internal/logging"
	"notesnest-web/internal/repository"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cliEnv is the environment notesctl reads; flags override it.
type cliEnv struct {
	APIURL     string        `env:"NOTES_API_URL" envDefault:"http://localhost:5000"`
	Timeout    time.Duration `env:"NOTES_API_TIMEOUT" envDefault:"10s"`
	RetryDelay time.Duration `env:"NOTES_API_RETRY_DELAY" envDefault:"1s"`
	Token      string        `env:"NOTESNEST_ADMIN_TOKEN"`
	Secret     string        `env:"NOTESNEST_ADMIN_SECRET"`
}

type app struct {
	env     cliEnv
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "notesctl",
		Short: "Browse and moderate Notes Nest submissions from the terminal",
		Long: `notesctl talks to the Notes Nest notes API directly.
It lists approved notes, shows the review queue and approves, rejects or
deletes submissions with an admin token or shared secret.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Parse(&a.env); err != nil {
				return fmt.Errorf("parse env: %w", err)
			}

			level := "warn"
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(config.LoggingConfig{Level: level, Format: "console"})
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().String("api-url", "", "Notes API base URL (default $NOTES_API_URL)")
	root.PersistentFlags().String("token", "", "Admin bearer token (default $NOTESNEST_ADMIN_TOKEN)")
	root.PersistentFlags().String("secret", "", "Admin shared secret (default $NOTESNEST_ADMIN_SECRET)")

	root.AddCommand(
		newListCmd(a),
		newPendingCmd(a),
		newActionCmd(a, domain.ActionApprove, "Approve a pending note"),
		newActionCmd(a, domain.ActionReject, "Reject a pending note"),
		newActionCmd(a, domain.ActionDelete, "Delete a note"),
		newLoginCmd(a),
		newHashSecretCmd(),
	)

	return root
}

// flagOrEnv prefers an explicitly passed flag over the environment.
func flagOrEnv(cmd *cobra.Command, name, fromEnv string) string {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return f.Value.String()
	}
	return fromEnv
}

func (a *app) apiURL(cmd *cobra.Command) string {
	return flagOrEnv(cmd, "api-url", a.env.APIURL)
}

func (a *app) noteRepo(cmd *cobra.Command) repository.NoteRepository {
	return repository.NewNoteRepository(a.apiURL(cmd), &http.Client{Timeout: a.env.Timeout})
}

func (a *app) credential(cmd *cobra.Command) (*domain.Credential, error) {
	if token := flagOrEnv(cmd, "token", a.env.Token); token != "" {
		return &domain.Credential{Kind: domain.CredentialToken, Value: token}, nil
	}
	if secret := flagOrEnv(cmd, "secret", a.env.Secret); secret != "" {
		return &domain.Credential{Kind: domain.CredentialSecret, Value: secret}, nil
	}
	return nil, errors.New("no admin credential: pass --token or --secret, or set NOTESNEST_ADMIN_TOKEN or NOTESNEST_ADMIN_SECRET")
}
