// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml, initialize the database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles sign in, registration and the stored session
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Log in, register and manage the stored session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password (at least 8 characters)",
						Sources:  cli.EnvVars("COOK_PASSWORD"),
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and log in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Usage: "First name", Required: true},
					&cli.StringFlag{Name: "last-name", Usage: "Last name", Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "Phone number, at least 10 digits", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (at least 8 characters)", Required: true},
					&cli.StringFlag{Name: "confirm-password", Usage: "Repeat the password", Required: true},
					&cli.StringFlag{Name: "address", Usage: "Street address"},
					&cli.StringFlag{Name: "city", Usage: "City"},
					&cli.StringFlag{Name: "state", Usage: "State or region"},
					&cli.StringFlag{Name: "zip", Usage: "Postal code"},
					&cli.StringFlag{Name: "country", Usage: "Country"},
					&cli.IntFlag{Name: "age", Usage: "Age"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show whether a session token is stored",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// recipesCommand handles browsing categories and recipes
func recipesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recipes",
		Aliases: []string{"r"},
		Usage:   "Browse categories and recipes",
		Commands: []*cli.Command{
			{
				Name:  "categories",
				Usage: "List recipe categories",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RecipeCategories,
			},
			{
				Name:  "list",
				Usage: "List the recipes in a category",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "category",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RecipeList,
			},
			{
				Name:  "show",
				Usage: "Show ingredients, instructions and links for a recipe",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, markdown, json)",
						Value:   "text",
					},
				},
				Action: r.RecipeShow,
			},
			{
				Name:  "open",
				Usage: "Open a recipe's source, video or picture in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.RecipeOpen,
			},
		},
	}
}

// favoritesCommand handles the liked recipes
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage your favorite recipes",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorite recipes",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Read the local copy instead of calling the API",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Add a recipe to favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Recipe name (looked up when omitted)",
					},
					&cli.StringFlag{
						Name:  "thumb",
						Usage: "Recipe thumbnail URL (looked up when omitted)",
					},
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a recipe from favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.FavoritesRemove,
			},
			{
				Name:  "export",
				Usage: "Export favorites to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (defaults to favorites.<ext>)",
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Export the local copy instead of calling the API",
					},
				},
				Action: r.FavoritesExport,
			},
			{
				Name:  "cookbook",
				Usage: "Write a recipe card for every favorite, plus a manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Card format (markdown, text, json)",
						Value:   "markdown",
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Output directory (defaults to cookbook_<epoch>)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent recipe lookups",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Recipe lookups per second",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Use the local copy of the favorites list",
					},
				},
				Action: r.FavoritesCookbook,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the UI is running",
				Value: "./tmp/cook-tui.log",
			},
		},
		Action: r.TUI,
	}
}
