package main

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikhaidn/PlokminFun-sub002/internal/config"
	"github.com/mikhaidn/PlokminFun-sub002/internal/httpserver"
	"github.com/mikhaidn/PlokminFun-sub002/internal/store"
	"github.com/mikhaidn/PlokminFun-sub002/internal/table"
)

func main() {
	cfg := config.FromEnv()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open store at %s: %v", cfg.DBPath, err)
	}
	defer st.Close()

	tables := table.NewManager(st, cfg.HistoryLimit, log)
	go func() {
		for range time.Tick(10 * time.Minute) {
			tables.PruneIdle(2 * time.Hour)
		}
	}()

	srv := httpserver.New(tables, st, cfg.DailySalt, log)

	if err := srv.Start(cfg.Addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
