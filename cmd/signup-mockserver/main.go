// Command signup-mockserver serves the verification and registration
// endpoints from memory, accepting a fixed captcha and code.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/signal-golang/signup/mockserver"
	log "github.com/sirupsen/logrus"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugln("[mockserver] no .env file found, reading from environment")
	}

	addr := flag.String("addr", getEnv("MOCKSERVER_ADDR", ":8080"), "listen address")
	captcha := flag.String("captcha", getEnv("MOCKSERVER_CAPTCHA", mockserver.DefaultCaptcha), "accepted captcha token")
	code := flag.String("code", getEnv("MOCKSERVER_CODE", mockserver.DefaultCode), "verification code sent to every session")
	debug := flag.Bool("debug", false, "log every session change")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mockserver.New(mockserver.Options{Captcha: *captcha, Code: *code}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infoln("[mockserver] listening on", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalln("[mockserver]", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorln("[mockserver] shutdown", err)
	}
}
