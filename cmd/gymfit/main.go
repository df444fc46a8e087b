package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtroode/gymfit-client/internal/config"
	"github.com/dtroode/gymfit-client/internal/media"
	"github.com/dtroode/gymfit-client/internal/model"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

var (
	errInvalidInput = errors.New("invalid input")
	errNotSignedIn  = errors.New("not signed in")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	if err := rootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gymfit",
		Short:         "Fitness tracker client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)

	cmd.AddCommand(
		versionCmd(),
		signInCmd(),
		signUpCmd(),
		signOutCmd(),
		profileCmd(),
	)

	return cmd
}

// withApp loads configuration, builds the app and closes it after fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
		},
	}
}

func signInCmd() *cobra.Command {
	var form model.SignInForm

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and keep the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				res, err := a.auth.SignIn(cmd.Context(), form)
				if err := reportInvalid(cmd.OutOrStdout(), res); err != nil {
					return err
				}
				if err != nil {
					return err
				}
				user, _ := a.store.Current()
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.Name, user.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")

	return cmd
}

func signUpCmd() *cobra.Command {
	var form model.SignUpForm

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				res, err := a.auth.SignUp(cmd.Context(), form)
				if err := reportInvalid(cmd.OutOrStdout(), res); err != nil {
					return err
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", form.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "display name")
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")

	return cmd
}

func signOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				if err := a.auth.SignOut(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the signed-in profile",
	}
	cmd.AddCommand(profileShowCmd(), profileUpdateCmd(), profilePhotoCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the signed-in profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				user, ok := a.store.Current()
				if !ok {
					return errNotSignedIn
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Name:   %s\n", user.Name)
				fmt.Fprintf(out, "Email:  %s\n", user.Email)
				fmt.Fprintf(out, "Avatar: %s\n", a.store.AvatarURL(a.cfg.API.AvatarBaseURL))
				return nil
			})
		},
	}
}

func profileUpdateCmd() *cobra.Command {
	var form model.ProfileForm

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change name and optionally password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				user, ok := a.store.Current()
				if !ok {
					return errNotSignedIn
				}
				if !cmd.Flags().Changed("name") {
					form.Name = user.Name
				}
				form.Email = user.Email

				res, err := a.profile(media.NewPathPicker("")).SubmitProfile(cmd.Context(), form)
				if err := reportInvalid(cmd.OutOrStdout(), res); err != nil {
					return err
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "new display name")
	cmd.Flags().StringVar(&form.OldPassword, "old-password", "", "current password")
	cmd.Flags().StringVar(&form.Password, "password", "", "new password")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "new password again")

	return cmd
}

func profilePhotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "photo [path]",
		Short: "Upload a new avatar; prompts for a path when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if _, ok := a.store.Current(); !ok {
					return errNotSignedIn
				}

				var picker model.MediaPicker
				if len(args) == 1 {
					picker = media.NewPathPicker(args[0])
				} else {
					picker = media.NewPromptPicker(cmd.InOrStdin(), cmd.OutOrStdout())
				}

				ref, err := a.profile(picker).ChangePhoto(cmd.Context())
				if err != nil {
					return err
				}
				if ref != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Avatar: %s\n", a.store.AvatarURL(a.cfg.API.AvatarBaseURL))
				}
				return nil
			})
		},
	}
}

// reportInvalid prints field errors in a stable order.
func reportInvalid(out io.Writer, res model.ValidationResult) error {
	if res.OK() {
		return nil
	}

	fields := make([]string, 0, len(res))
	for field := range res {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fmt.Fprintf(out, "%s: %s\n", field, res[field].Message)
	}
	return errInvalidInput
}
