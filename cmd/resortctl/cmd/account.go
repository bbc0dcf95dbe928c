package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "login",
		Short:   "Sign in and keep the token pair in the session file",
		GroupID: "account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := model.Credentials{Username: a.v.GetString(keyUsername), Password: a.v.GetString(keyPassword)}
			if err := validation.ValidateLogin(creds); err != nil {
				return err
			}
			sess, err := a.sessionFile()
			if err != nil {
				return err
			}
			// Login is anonymous, so a stale session does not get in the way.
			c, err := a.client()
			if err != nil {
				return err
			}
			tokens, err := c.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			if err := sess.SetTokens(tokens); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", creds.Username)
			return err
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "Forget the stored session",
		GroupID: "account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.sessionFile()
			if err != nil {
				return err
			}
			if err := sess.Clear(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		},
	}
}

func (a *app) signupCmd() *cobra.Command {
	var req model.SignupRequest
	signup := &cobra.Command{
		Use:     "signup",
		Short:   "Create a guest account and sign in",
		GroupID: "account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Username = a.v.GetString(keyUsername)
			req.Password = a.v.GetString(keyPassword)
			req.ConfirmPassword = req.Password
			if err := validation.ValidateSignup(req); err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			tokens, err := c.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			if tokens.AccessToken != "" {
				sess, err := a.sessionFile()
				if err != nil {
					return err
				}
				if err := sess.SetTokens(tokens); err != nil {
					return fmt.Errorf("save session: %w", err)
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "account %s created\n", req.Username)
			return err
		},
	}
	signup.Flags().StringVar(&req.Email, "email", "", "email address")
	signup.Flags().StringVar(&req.FullName, "full-name", "", "full name")
	signup.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	return signup
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the signed-in profile",
		GroupID: "account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			u, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), u,
				[]string{"ID", "Username", "Email", "Name", "Role"},
				[][]string{{strconv.FormatInt(u.ID, 10), u.Username, u.Email, u.FullName, u.Role}})
		},
	}
}
