package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var sigint chan os.Signal

func waitShutdown(e *echo.Echo, idleConnsClosed chan<- interface{}) {
	defer close(idleConnsClosed)

	sigint = make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	<-sigint
	log.Info("received shutdown signal")

	idleError("HTTP server shutdown:", e.Shutdown(context.Background()))
}

func listenAndServe(addr string, idleConnsClosed chan<- interface{}) {
	e := apiHandler()
	e.HideBanner = true
	go waitShutdown(e, idleConnsClosed)

	e.Use(middleware.Logger())

	log.WithField("addr", addr).Info("listening")
	idleError("HTTP server end:", e.Start(addr))
}

// Open open.
func Open(addr string) {
	idleConnsClosed := make(chan interface{})
	go listenAndServe(addr, idleConnsClosed)
	<-idleConnsClosed
}

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	verbose := flag.Bool("verbose", false, "log engine moves")
	flag.Parse()

	log.SetHandler(cli.Default)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	connStr := connString()
	if err := openDB(connStr); err != nil {
		log.WithError(err).WithField("connStr", connStr).Fatal("failed to connect database")
	}
	defer func() {
		idleError("close server:", Close())
	}()
	Open(*addr)
}
