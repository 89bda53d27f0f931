package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/flamday/internal/cli"
	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/logger"
	"github.com/julianstephens/flamday/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Storage path. A .json file selects the JSON store, anything else SQLite." type:"path" default:"${config}" env:"FLAMDAY_CONFIG"`
	Debug     bool   `help:"Log debug output to stderr." env:"FLAMDAY_DEBUG"`
	Departure string `help:"Ship departure time (HH:MM)." default:"${departure}" env:"FLAMDAY_DEPARTURE"`
	Onboard   string `help:"All-aboard time (HH:MM)." default:"${onboard}" env:"FLAMDAY_ONBOARD"`
	Timezone  string `help:"IANA time zone for the schedule." default:"${timezone}" env:"FLAMDAY_TIMEZONE"`
	Date      string `help:"Visit date (YYYY-MM-DD), defaults to today." env:"FLAMDAY_DATE"`
	GPS       string `help:"Location source: none, fixed:LAT,LNG or file:PATH." default:"${gps}" env:"FLAMDAY_GPS"`

	Init      cli.InitCmd      `cmd:"" help:"Initialize flamday storage."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive day companion." default:"1"`
	Day       cli.DayCmd       `cmd:"" help:"Print the itinerary with completion status."`
	Toggle    cli.ToggleCmd    `cmd:"" help:"Mark or unmark an activity as completed."`
	Reset     cli.ResetCmd     `cmd:"" help:"Clear all completion progress."`
	Budget    cli.BudgetCmd    `cmd:"" help:"Show the budget summary."`
	Guide     cli.GuideCmd     `cmd:"" help:"Show the pronunciation guide."`
	Countdown cli.CountdownCmd `cmd:"" help:"Show the time left until departure."`
	Distance  cli.DistanceCmd  `cmd:"" help:"Show the distance to the next pending activity."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Backup    struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Offline day companion for a cruise stop in Flåm"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":   constants.Version,
			"config":    constants.DefaultConfigPath,
			"departure": constants.ShipDepartureTime,
			"onboard":   constants.ShipOnboardTime,
			"timezone":  constants.DefaultTimezone,
			"gps":       constants.DefaultGPS,
		},
	)

	settings := cli.Settings{
		Departure: CLI.Departure,
		Onboard:   CLI.Onboard,
		Timezone:  CLI.Timezone,
		Date:      CLI.Date,
		GPS:       CLI.GPS,
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store := storage.New(CLI.Config)
	appCtx := cli.NewContext(store, settings)
	defer store.Close()

	// Init handles its own loading
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := appCtx.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
