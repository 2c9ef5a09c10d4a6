// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// listenFlags are shared by the root command and "listen" so either form accepts them.
// They are local so the root copies do not collide with the subcommands' own flags.
func listenFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
			Sources: cli.EnvVars("SPINS_CONFIG"),
			Local:   true,
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "Catalog backend (memory or sqlite)",
			Sources: cli.EnvVars("SPINS_BACKEND"),
			Local:   true,
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Diagnostic log level (debug, info, warn, error)",
			Sources: cli.EnvVars("SPINS_LOG_LEVEL"),
			Local:   true,
		},
	}
}

// listenCommand starts an interactive catalog session
func listenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "listen",
		Aliases: []string{"session", "repl"},
		Usage:   "Start an interactive album catalog session",
		Flags:   listenFlags(),
		Action:  r.Listen,
	}
}

// setupCommand writes a starter configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml from the built-in template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars("SPINS_CONFIG"),
			},
		},
		Action: r.Setup,
	}
}
