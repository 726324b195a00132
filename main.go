package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/integration-selector/internal/app"
	"github.com/atomicstack/integration-selector/internal/config"
	"github.com/atomicstack/integration-selector/internal/logging"
	"github.com/atomicstack/integration-selector/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		if !errors.Is(err, app.ErrCancelled) {
			logging.Error(err)
		}
		fmt.Fprintln(os.Stderr, app.Describe(err))
		os.Exit(app.ExitCode(err))
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload records how the selector was launched. The screen is
// drawn on stderr and the result goes to stdout, so both are probed.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for name, value := range cfg.Flags {
		flags[name] = value
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"config":     cfg,
		"configFile": cfg.File,
		"source":     cfg.App.Source,
		"multi":      cfg.App.Multi,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	streams := probeStreams()
	payload["streams"] = streams
	payload["resultPiped"] = !streams.byRole(roleResult).IsTerminal
	return payload
}

const (
	roleKeys   = "keys"
	roleResult = "result"
	roleScreen = "screen"
)

type streamReport struct {
	Screen  *screenSize   `json:"screen,omitempty"`
	Streams []streamProbe `json:"streams"`
}

type screenSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type streamProbe struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (r streamReport) byRole(role string) streamProbe {
	for _, s := range r.Streams {
		if s.Role == role {
			return s
		}
	}
	return streamProbe{Role: role}
}

// probeStreams checks each standard descriptor with x/term. The screen size
// is taken from stderr, where the program renders.
func probeStreams() streamReport {
	files := []struct {
		name string
		role string
		file *os.File
	}{
		{"stdin", roleKeys, os.Stdin},
		{"stdout", roleResult, os.Stdout},
		{"stderr", roleScreen, os.Stderr},
	}
	report := streamReport{Streams: make([]streamProbe, 0, len(files))}
	for _, f := range files {
		probe := streamProbe{Name: f.name, Role: f.role}
		fd := int(f.file.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			probe.IsTerminal = true
			width, height, err := term.GetSize(fd)
			if err != nil {
				probe.Error = err.Error()
			} else {
				probe.Width, probe.Height = width, height
				if f.role == roleScreen {
					report.Screen = &screenSize{Width: width, Height: height}
				}
			}
		}
		report.Streams = append(report.Streams, probe)
	}
	return report
}
