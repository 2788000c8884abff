package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jiheejiheekim/monarch-Mobile/internal/bootstrap"
	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/version"
)

type command struct {
	name    string
	summary string
	run     func()
}

var commands = []command{
	{"server", "Start the login server", runServer},
	{"version", "Show version information", version.PrintVersion},
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	if *showVersion {
		version.PrintVersion()
		return
	}

	if flag.NArg() == 0 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	name := flag.Arg(0)
	for _, cmd := range commands {
		if cmd.name == name {
			cmd.run()
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
	printUsage(os.Stderr)
	os.Exit(2)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS] COMMAND\n\n", os.Args[0])
	fmt.Fprintln(w, "Session login backend for the Monarch back-office")
	fmt.Fprintln(w, "\nCommands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s%s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w, "\nOptions:")
	fmt.Fprintln(w, "  -v, --version    Show version information")
	fmt.Fprintln(w, "  -h, --help       Show this help message")
}

func runServer() {
	if err := bootstrap.Run(config.Load()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
