package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tangocal/src-server/jwt"
	"tangocal/src-server/metric"
	"tangocal/src-server/model"
	"tangocal/src-server/route"
	"tangocal/src-server/scheduler"
	"tangocal/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	mintAdminToken := flag.Bool("mint-admin-token", false, "print a fresh admin bearer token and exit")
	flag.Parse()

	as := utils.NewAppState()

	if *mintAdminToken {
		now := time.Now().UTC()
		token, err := jwt.Encode(jwt.Payload{
			UserID:    "admin",
			Role:      jwt.RoleAdmin,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(as.Config.GetAdminTokenExpire()).Unix(),
		}, as.Config.GetAdminTokenSecret())
		if err != nil {
			slog.Error("can't mint admin token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if err := model.CreateSchema(as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	go metric.Init(as)
	go scheduler.VenueAgeOut(as)
	go scheduler.BackupRetention(as)

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		route.Events(muxer, as)
		route.Venues(muxer, as)
		route.Organizers(muxer, as)
		route.Categories(muxer, as)
		route.Voice(muxer, as)
		route.Analytics(muxer, as)
		route.Health(muxer, as)
		route.Ics(muxer, as)
		slog.Info("http server listening", "port", as.Config.GetPort())
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit")

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
