package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Learnverse"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startEngine,
			Name:        "engine",
			Usage:       "Start the progression engine",
			Flags:       []cli.Flag{},
			Category:    "Engine",
			Description: `Wires the store, database, redis, repositories, and domains, then waits for shutdown.`,
		},
		{
			Action:      server.migrate,
			Name:        "migrate",
			Usage:       "Migrate the catalog database",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Creates or updates the relational tables for courses, lessons, quests, achievements, teams, and activities.`,
		},
	}

	s.app = app
}
