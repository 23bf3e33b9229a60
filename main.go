package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/warhoundgame/warhound/telemetry"
)

func main() {
	seed := flag.Int64("seed", 1, "simulation RNG seed")
	inspectAddr := flag.String("inspect", "", "serve websocket debug snapshots on this address (e.g. :8090)")
	debug := flag.Bool("debug", false, "draw the nav grid and active paths")
	flag.Parse()

	var hub *telemetry.Hub
	if *inspectAddr != "" {
		hub = telemetry.NewHub(nil)
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		go func() {
			log.Printf("telemetry on %s/ws", *inspectAddr)
			if err := http.ListenAndServe(*inspectAddr, mux); err != nil {
				log.Printf("telemetry server: %v", err)
			}
		}()
	}

	game, err := NewGame(*seed, *debug, hub)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("warhound")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
