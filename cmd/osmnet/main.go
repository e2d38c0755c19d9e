package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

// Options Global options shared by all commands
type Options struct {
	Logger Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to YAML file with custom filters"`
	Procs      int    `short:"j" long:"procs"  env:"PROCS"       description:"Number of PBF decoding goroutines" default:"4"`
}

var opts Options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		opts.Logger.Setup()
		return command.Execute(args)
	}

	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"network", "Extract network", "Extract network by predefined or custom filter and export it", &networkCommand{}},
		{"routes", "Extract routes", "Extract route relations (bus, tram, ...) on top of driving network and export them", &routesCommand{}},
		{"places", "Extract networks for places", "Extract network for every place of boundaries GeoJSON (e.g. LADs) and export them", &placesCommand{}},
	}
	for _, cmd := range commands {
		if _, err := parser.AddCommand(cmd.name, cmd.short, cmd.long, cmd.data); err != nil {
			log.Fatal().Err(err).Str("command", cmd.name).Msg("Can't register command")
		}
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
