package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/auth"
)

func newTokenCmd(app *App) *cobra.Command {
	var (
		subject  string
		username string
		role     string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := access.Role(strings.ToLower(role))
			if r != access.RoleUser && r != access.RoleAdmin {
				return fmt.Errorf("unknown role %q", role)
			}
			caller := access.Caller{ID: subject, Username: username, Role: r}
			token, err := auth.Issue(auth.Config{Secret: app.Config.JWTSecret, Issuer: app.Config.JWTIssuer}, caller, ttl, app.Now())
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "User id placed in the sub claim")
	cmd.Flags().StringVar(&username, "username", "", "Username claim")
	cmd.Flags().StringVar(&role, "role", string(access.RoleUser), "Role claim (user or admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
