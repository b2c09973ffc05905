// Command quillcore is a terminal demo of the editor core: a tcell-backed
// Framed variant running the gutter, registers, brackets, timeline, and
// palette plugins (flag parsing, a terminal backend, a signal-driven
// shutdown).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/quillcore/editor/internal/hostdemo"
	"github.com/quillcore/editor/internal/logx"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		filePath       = flag.String("file", "", "path to a file to open (empty buffer if unset)")
		logPath        = flag.String("log", "", "path to a log file (diagnostics are discarded if unset)")
		configDir      = flag.String("config-dir", "", "user config directory for the settings.json config-tiddler layer (OS default if unset)")
		enablePlugins  = flag.String("enable-plugin", "", "comma-separated plugin names to force-enable, overriding config")
		disablePlugins = flag.String("disable-plugin", "", "comma-separated plugin names to force-disable, overriding config")
	)
	flag.Parse()

	log := logx.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "quillcore: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log = logx.New("quillcore", f, logx.LevelInfo)
	}

	initialText, err := readInitialText(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quillcore: %v\n", err)
		return 1
	}

	var opts []hostdemo.Option
	if *configDir != "" {
		opts = append(opts, hostdemo.WithUserConfigDir(*configDir))
	}
	for _, name := range splitNonEmpty(*enablePlugins) {
		opts = append(opts, hostdemo.WithHostAttr(name, true))
	}
	for _, name := range splitNonEmpty(*disablePlugins) {
		opts = append(opts, hostdemo.WithHostAttr(name, false))
	}

	host, err := hostdemo.New(initialText, log, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quillcore: %v\n", err)
		return 1
	}
	defer host.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		host.Shutdown()
	}()

	if err := host.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "quillcore: %v\n", err)
		return 1
	}
	return 0
}

// splitNonEmpty splits a comma-separated flag value, dropping empty and
// whitespace-only entries so a trailing comma or an unset flag yields nil.
func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func readInitialText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
