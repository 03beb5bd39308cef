// Command moneydash-login signs in against the remote API and writes
// the session file the dashboard server reads its bearer token from.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"moneydash/internal/api"
	"moneydash/internal/cli"
	"moneydash/internal/config"
	"moneydash/internal/session"
)

func main() {
	register := flag.Bool("register", false, "create an account before signing in")
	logout := flag.Bool("logout", false, "clear the stored session and exit")
	flag.Parse()

	cli.LoadEnvFile()
	cfg := config.Load()

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		var err error
		sessionPath, err = session.DefaultPath()
		if err != nil {
			log.Fatalf("resolve session path: %v", err)
		}
	}
	sess, err := session.Open(sessionPath)
	if err != nil {
		log.Fatalf("open session: %v", err)
	}

	if *logout {
		if err := sess.Clear(); err != nil {
			log.Fatalf("clear session: %v", err)
		}
		fmt.Println("Session cleared.")
		return
	}

	if cfg.APIBaseURL == "" {
		log.Fatalf("set MONEYDASH_API_URL")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration: %v", err)
	}

	client := api.New(cfg.APIBaseURL, sess, cfg.APITimeout)
	reader := bufio.NewReader(os.Stdin)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *register {
		name := prompt(reader, "Name: ")
		email := prompt(reader, "Email: ")
		password := promptPassword("Password: ")
		if err := client.Register(ctx, name, email, password); err != nil {
			log.Fatalf("register: %v", err)
		}
		fmt.Println("Account created.")

		user, token, err := client.SignIn(ctx, email, password)
		if err != nil {
			log.Fatalf("sign in: %v", err)
		}
		saveSession(sess, user, token, sessionPath)
		return
	}

	email := prompt(reader, "Email: ")
	password := promptPassword("Password: ")
	user, token, err := client.SignIn(ctx, email, password)
	if err != nil {
		log.Fatalf("sign in: %v", err)
	}
	saveSession(sess, user, token, sessionPath)
}

func saveSession(sess *session.Session, user api.User, token, path string) {
	if err := sess.Save(session.State{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Token:     token,
	}); err != nil {
		log.Fatalf("save session: %v", err)
	}
	fmt.Printf("Signed in as %s. Session written to %s\n", user.Name, path)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Print(label)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	return strings.TrimSpace(string(b))
}
