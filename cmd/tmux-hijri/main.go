package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/smokyabdulrahman/hijri-cal/internal/api"
	"github.com/smokyabdulrahman/hijri-cal/internal/cache"
	"github.com/smokyabdulrahman/hijri-cal/internal/config"
	"github.com/smokyabdulrahman/hijri-cal/internal/converter"
	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	source := flag.String("source", converter.SourceAlAdhan, "Calendar source: "+strings.Join(converter.Sources, " or "))
	method := flag.String("method", api.DefaultMethod, "Al Adhan calendar method: "+api.MethodsHelp())
	format := flag.String("format", hijri.FormatDate, "Display format: "+strings.Join(hijri.FormatModes, ", ")+", or a custom Go template (e.g. '{{.Day}} {{.Month}}'). Template fields: .Day, .Month, .MonthNumber, .Year, .Weekday, .Gregorian, .Event")
	cacheDir := flag.String("cache-dir", "", "Cache directory (default: ~/.cache/hijri-cal/)")
	noCache := flag.Bool("no-cache", false, "Skip the disk cache and fetch only the requested date")
	dateFlag := flag.String("date", "", "Gregorian date as YYYY-MM-DD (default: today)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	listMethods := flag.Bool("list-methods", false, "Print supported calendar methods and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("tmux-hijri %s\n", version)
		return
	}

	if *listMethods {
		printMethods()
		return
	}

	if err := run(*source, *method, *format, *cacheDir, *dateFlag, *noCache); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printMethods prints the table of supported calendar methods.
func printMethods() {
	fmt.Println("Supported calendar methods:")
	fmt.Println()
	fmt.Printf("  %-13s %s\n", "ID", "Name")
	fmt.Printf("  %-13s %s\n", "──", "────")
	for _, m := range api.Methods {
		fmt.Printf("  %-13s %s\n", m, api.MethodNames[m])
	}
	fmt.Println()
	fmt.Println("Use --method <ID> to select a calendar method (default " + api.DefaultMethod + ").")
	fmt.Println("--source tabular ignores the method and works offline.")
}

func run(source, method, format, cacheDir, dateFlag string, noCache bool) error {
	if !api.ValidMethod(method) {
		return fmt.Errorf("invalid --method %q: must be one of %s", method, api.MethodsHelp())
	}

	date := time.Now()
	if dateFlag != "" {
		var err error
		if date, err = hijri.ParseDate(dateFlag, time.Local); err != nil {
			return err
		}
	}

	var c *cache.Cache
	if source != converter.SourceTabular && !noCache {
		dir, err := config.ExpandPath(cacheDir)
		if err != nil {
			return err
		}
		if c, err = cache.New(dir); err != nil {
			// Cache init failure is non-fatal; we just skip caching.
			c = nil
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		}
	}

	conv, err := converter.New(source, method, nil, c)
	if err != nil {
		return err
	}

	d, err := hijri.NewCalendar(conv).Convert(date)
	if err != nil {
		return err
	}

	fmt.Print(hijri.FormatOutput(d, date, format))
	return nil
}
