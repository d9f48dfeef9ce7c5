package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"agendacal/internal/agenda"
	"agendacal/internal/capture"
	"agendacal/internal/config"
	"agendacal/internal/dates"
	"agendacal/internal/ics"
	appLog "agendacal/internal/log"
	"agendacal/internal/store"
	"agendacal/internal/term"
	"agendacal/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	listen     string
	date       string
	days       int
	once       bool
	snapshot   string
}

func main() {
	flags := parseFlags()

	if err := run(flags); err != nil {
		appLog.Error("agendacal failed", err)
		appLog.Sync()
		os.Exit(1)
	}
	appLog.Sync()
}

func run(flags flagConfig) error {
	conf, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", flags.configPath, err)
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	// CLI flags override config values when set.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.days >= 0 {
		n := flags.days
		conf.LengthDays = &n
	}
	if conf.Length() > conf.MaxLengthDays {
		return fmt.Errorf("-days %d exceeds max_length_days %d", conf.Length(), conf.MaxLengthDays)
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"culture", conf.Culture,
		"length_days", conf.Length(),
		"refresh", conf.RefreshCron,
		"ics_count", len(conf.ICS),
		"once", flags.once,
		"snapshot", flags.snapshot,
	)

	loc := conf.Location()
	view, err := agenda.NewView(conf.AgendaOptions())
	if err != nil {
		return err
	}

	sources := make([]ics.Source, 0, len(conf.ICS))
	for _, c := range conf.ICS {
		sources = append(sources, ics.Source{ID: c.SourceID(), URL: c.URL})
	}
	st := store.New(store.ICSLoader{
		Fetcher:  ics.NewFetcher(conf.CacheDir),
		Sources:  sources,
		Location: loc,
	})

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := st.Refresh(ctx); err != nil {
		// Serving an empty agenda beats not serving; the schedule retries.
		appLog.Error("initial refresh failed", err)
	}

	if flags.once {
		anchor, err := anchorDate(flags.date, loc)
		if err != nil {
			return err
		}
		a, err := view.Build(anchor, st.Events())
		if err != nil {
			return err
		}
		fmt.Print(term.Render(a))
		return nil
	}

	sched, err := store.NewScheduler(ctx, conf.RefreshCron, st)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := web.NewServer(conf, view, st)

	if flags.snapshot == "" {
		return srv.ListenAndServe(ctx)
	}

	// Snapshot mode: serve just long enough to capture the page.
	srvCtx, cancelSrv := context.WithCancel(ctx)
	defer cancelSrv()
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(srvCtx) }()

	if err := waitHealthy(ctx, "http://"+conf.Listen+"/health"); err != nil {
		return err
	}
	err = capture.AgendaPNG(ctx, snapshotOptions(conf, flags))
	cancelSrv()
	if srvErr := <-errCh; srvErr != nil && err == nil {
		err = srvErr
	}
	if err == nil {
		appLog.Info("snapshot written", "path", flags.snapshot)
	}
	return err
}

// snapshotOptions points the capture at this process's own /agenda page,
// carrying the basic auth credentials the server will demand.
func snapshotOptions(conf *config.Config, flags flagConfig) capture.Options {
	q := url.Values{}
	q.Set("days", strconv.Itoa(conf.Length()))
	if flags.date != "" {
		q.Set("date", flags.date)
	}
	opts := capture.Options{
		URL:        "http://" + conf.Listen + "/agenda?" + q.Encode(),
		OutputPath: flags.snapshot,
		Width:      conf.Snapshot.Width,
		Height:     conf.Snapshot.Height,
	}
	if ba := conf.BasicAuth; ba != nil {
		opts.Username = ba.Username
		opts.Password = ba.Password
	}
	return opts
}

// anchorDate parses a YYYY-MM-DD flag value, defaulting to today.
func anchorDate(v string, loc *time.Location) (time.Time, error) {
	if v == "" {
		return dates.StartOfDay(time.Now().In(loc)), nil
	}
	d, err := time.ParseInLocation("2006-01-02", v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -date %q: %w", v, err)
	}
	return d, nil
}

// waitHealthy polls the health endpoint until it answers or 10s pass.
func waitHealthy(ctx context.Context, healthURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return err
		}
		if resp, err := http.DefaultClient.Do(req); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.New("server did not become healthy")
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./agendacal.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.date, "date", "", "Agenda start date YYYY-MM-DD (default today)")
	flag.IntVar(&cfg.days, "days", -1, "Number of days to show (overrides config if >= 0)")
	flag.BoolVar(&cfg.once, "once", false, "Refresh once, print the agenda to the terminal and exit")
	flag.StringVar(&cfg.snapshot, "snapshot", "", "Write a PNG of the agenda page to this path and exit")

	flag.Parse()

	return cfg
}
