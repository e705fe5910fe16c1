package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/vocdoni/ec-elgamal/log"
	"github.com/vocdoni/ec-elgamal/service"
	"github.com/vocdoni/ec-elgamal/storage"
	"github.com/vocdoni/ec-elgamal/storage/db/metadb"
)

func runServe(env *environment, args []string) error {
	fs := newFlagSet(env, "serve")
	fs.StringVar(&env.cfg.DataDir, "datadir", env.cfg.DataDir, "data directory")
	fs.StringVar(&env.cfg.DBType, "dbtype", env.cfg.DBType, "database type (pebble, memory)")
	fs.StringVar(&env.cfg.Host, "host", env.cfg.Host, "API listen host")
	fs.IntVar(&env.cfg.Port, "port", env.cfg.Port, "API listen port")
	if err := parseFlags(env, fs, args); err != nil {
		return err
	}

	if err := service.ValidateCurves(time.Minute); err != nil {
		return fmt.Errorf("curve registry check failed: %w", err)
	}

	database, err := metadb.New(env.cfg.DBType, env.cfg.DatabaseDir())
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	stg := storage.New(database)
	defer stg.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	api := service.NewAPI(stg, env.cfg.Host, env.cfg.Port)
	if err := api.Start(ctx); err != nil {
		return err
	}
	defer api.Stop()
	host, port := api.HostPort()
	log.Infow("API server running", "host", host, "port", port, "datadir", env.cfg.DataDir, "dbtype", env.cfg.DBType)

	<-ctx.Done()
	log.Infow("shutting down")
	return nil
}
