// vgasim runs the kernel terminals on the host, rendering the text-mode frame
// and the hardware cursor into the current terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[vgasim] error: %s\n", err.Error())
	os.Exit(1)
}

func run(configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	sim, err := newSimulator(screen, cfg, logger.Sugar())
	if err != nil {
		return err
	}

	return sim.run()
}

func main() {
	configPath := flag.String("config", "vgasim.toml", "path to the simulator configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		exit(err)
	}
}
