// Command cronnext prints the upcoming run times of cron expressions.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/pflag"

	"github.com/candango/sked/cron"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now()))
}

// entry is one expression to evaluate, named after the file entry or the
// expression itself.
type entry struct {
	name       string
	expression string
}

func run(args []string, stdout, stderr io.Writer, now time.Time) int {
	var (
		afterFlag string
		count     int
		timezone  string
		filePath  string
		validate  bool
		logLevel  string
	)

	flagSet := pflag.NewFlagSet("cronnext", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&afterFlag, "after", "", "compute runs after this RFC 3339 instant (default: now)")
	flagSet.IntVarP(&count, "count", "n", 1, "number of runs to print for each expression")
	flagSet.StringVar(&timezone, "tz", "", "IANA time zone to evaluate in (default: the file's timezone, then local)")
	flagSet.StringVarP(&filePath, "file", "f", "", "YAML file listing named schedules")
	flagSet.BoolVar(&validate, "validate", false, "only check that the expressions parse")
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return exitOK
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Fprintf(stderr, "error: invalid --log-level %q\n", logLevel)
		return exitUsage
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	cron.SetLogger(logger)
	defer cron.SetLogger(nil)

	if count < 1 {
		fmt.Fprintf(stderr, "error: --count must be at least 1, got %d\n", count)
		return exitUsage
	}

	var entries []entry
	if filePath != "" {
		file, err := loadScheduleFile(filePath)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
		if timezone == "" {
			timezone = file.Timezone
		}
		for _, s := range file.Schedules {
			entries = append(entries, entry{name: s.Name, expression: s.Expression})
		}
	}
	for _, expr := range flagSet.Args() {
		entries = append(entries, entry{name: expr, expression: expr})
	}
	if len(entries) == 0 {
		fmt.Fprintln(stderr, "error: no expression given")
		printHelp(stderr, flagSet)
		return exitUsage
	}

	loc := time.Local
	if timezone != "" {
		var err error
		if loc, err = time.LoadLocation(timezone); err != nil {
			fmt.Fprintf(stderr, "error: unknown time zone %q: %v\n", timezone, err)
			return exitUsage
		}
	}

	after := now
	if afterFlag != "" {
		var err error
		if after, err = time.Parse(time.RFC3339, afterFlag); err != nil {
			fmt.Fprintf(stderr, "error: invalid --after: %v\n", err)
			return exitUsage
		}
	}
	after = after.In(loc)

	code := exitOK
	for _, e := range entries {
		schedule, err := cron.Parse(e.expression)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", e.name, err)
			code = exitInvalid
			continue
		}
		if validate {
			fmt.Fprintf(stdout, "%s\tok\t%s\n", e.name, schedule)
			continue
		}

		runs := cron.NewSerie(schedule, after).Take(count)
		logger.Info("computed runs", "name", e.name, "schedule", schedule.String(),
			"after", after, "runs", len(runs))
		if len(runs) == 0 {
			fmt.Fprintf(stdout, "%s\tnever\n", e.name)
			continue
		}
		for _, r := range runs {
			fmt.Fprintf(stdout, "%s\t%s\n", e.name, r.Format(time.RFC3339))
		}
	}
	return code
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `cronnext prints the next run times of cron expressions.

Expressions have six or seven fields:

  second minute hour day-of-month month day-of-week [year]

or one of @yearly, @annually, @monthly, @weekly, @daily, @midnight,
@hourly, @minutely.

Usage:
  cronnext [flags] [expression...]

Examples:
  # Next three runs of a weekday schedule
  cronnext -n 3 "0 0 23 ? * MON-FRI"

  # Every schedule listed in a file, in the file's time zone
  cronnext -f schedules.yaml

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
