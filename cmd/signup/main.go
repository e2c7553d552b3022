// Command signup registers a phone number as a new account.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/signal-golang/signup"
	"github.com/signal-golang/signup/verification"
)

var (
	configFile   = flag.String("config", "", "YAML config file")
	envFile      = flag.String("env", ".env", "dotenv file loaded before the environment is read")
	server       = flag.String("server", "", "registration server URL, overrides the config")
	tel          = flag.String("tel", "", "phone number in E.164 form")
	voice        = flag.Bool("voice", false, "receive the code by voice call instead of SMS")
	captcha      = flag.String("captcha", "", "captcha token, prompted for when needed and empty")
	code         = flag.String("code", "", "verification code, prompted for when empty")
	password     = flag.String("password", "", "account password, a random one is generated when empty")
	pushToken    = flag.String("push-token", "", "FCM push token, the account fetches messages itself when empty")
	writeConfig  = flag.String("write-config", "", "write the effective config to this file and exit")
	stdin        = bufio.NewReader(os.Stdin)
	errCancelled = errors.New("input cancelled")
)

func readLine(prompt string) string {
	fmt.Print(prompt)
	text, err := stdin.ReadString('\n')
	if err != nil {
		color.Red.Println(errCancelled)
		os.Exit(1)
	}
	return strings.TrimSpace(text)
}

func orPrompt(value *string, prompt string) func() string {
	return func() string {
		if *value != "" {
			return *value
		}
		return readLine(prompt)
	}
}

func printStep(step signup.Step, s *verification.Session) {
	switch step {
	case signup.StepCreateSession:
		color.Cyan.Printf("session %s created\n", s.ID)
	case signup.StepSubmitCaptcha:
		color.Cyan.Println("captcha accepted")
	case signup.StepRequestCode:
		color.Cyan.Println("verification code requested")
	case signup.StepSubmitCode:
		color.Cyan.Println("phone number verified")
	case signup.StepRegister:
		color.Cyan.Println("registration submitted")
	}
}

func main() {
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		color.Red.Println("Error loading .env file: " + err.Error())
		os.Exit(1)
	}

	cfg, err := signup.LoadConfig(*configFile)
	if err != nil {
		color.Red.Println(err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Server = *server
	}
	if *tel != "" {
		cfg.Tel = *tel
	}
	if *voice {
		cfg.VerificationType = string(verification.Voice)
	}
	if *writeConfig != "" {
		if err := signup.WriteConfig(*writeConfig, cfg); err != nil {
			color.Red.Println(err)
			os.Exit(1)
		}
		return
	}

	client := &signup.Client{
		GetPhoneNumber: func() string {
			if cfg.Tel != "" {
				return cfg.Tel
			}
			return readLine("Phone number (E.164): ")
		},
		GetPassword:         func() string { return *password },
		GetCaptchaToken:     orPrompt(captcha, "Captcha token: "),
		GetVerificationCode: orPrompt(code, "Verification code: "),
		GetPushToken:        func() string { return *pushToken },
		StepHandler:         printStep,
	}

	r, err := signup.NewRegistrar(cfg, client)
	if err != nil {
		color.Red.Println(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	account, err := r.Register(ctx)
	if err != nil {
		color.Red.Printf("registration failed (%s): %v\n", signup.KindOf(err), err)
		stop()
		os.Exit(1)
	}
	color.Green.Printf("registered %s\n", account.Number)
	fmt.Printf("uuid:     %s\npni:      %s\npassword: %s\n", account.UUID, account.PNI, account.Password)
}
