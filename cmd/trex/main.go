package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/trex"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	freeLook := flag.Bool("free-look", false, "drive the camera directly instead of the character")
	debug := flag.Bool("debug", false, "draw collider gizmos and log draw calls")
	flag.Parse()

	cfg := trex.DefaultConfig()
	if *configPath != "" {
		loaded, err := trex.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "trex: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *freeLook {
		cfg.Session.FreeLook = true
	}
	if *debug {
		cfg.Session.Debug = true
	}

	game, err := trex.NewGame(cfg, nil, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trex: %v\n", err)
		os.Exit(1)
	}
	game.Run()
}
