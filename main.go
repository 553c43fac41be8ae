package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/common"
	"github.com/milk9111/firebattle/config"
	"github.com/milk9111/firebattle/prefabs"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load("firebattle", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := config.SetupLogging(cfg, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	prefabs.Dir = cfg.PrefabDir

	ebiten.SetWindowSize(common.BaseWidth*cfg.Scale, common.BaseHeight*cfg.Scale)
	ebiten.SetWindowTitle("firebattle")

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start game")
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
