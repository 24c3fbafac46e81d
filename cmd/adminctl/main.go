// Package main provides operator commands for the visa admin database:
// running migrations, creating admin accounts and purging expired sessions.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/admin"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/service"
	adminStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/store/admin"
	sessionStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/store/session"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/config"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/database"
)

const commandTimeout = 30 * time.Second

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)

	createCmd := flag.NewFlagSet("create-admin", flag.ExitOnError)
	createEmail := createCmd.String("email", "", "Admin email (required)")
	createPassword := createCmd.String("password", "", "Initial password, at least 8 characters (required)")
	createFirst := createCmd.String("first-name", "Admin", "First name")
	createLast := createCmd.String("last-name", "User", "Last name")
	createRole := createCmd.String("role", "admin", "Role: super_admin, admin, manager, staff, finance_manager")
	createJSON := createCmd.Bool("json", false, "Output as JSON")

	cleanupCmd := flag.NewFlagSet("cleanup-sessions", flag.ExitOnError)

	hashCmd := flag.NewFlagSet("hash-password", flag.ExitOnError)
	hashCost := hashCmd.Int("cost", bcrypt.DefaultCost, "bcrypt cost")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "migrate":
		_ = migrateCmd.Parse(os.Args[2:])
		err = withDatabase(func(ctx context.Context, pool *database.Pool) error {
			if err := database.Migrate(ctx, pool.DB()); err != nil {
				return err
			}
			fmt.Println("migrations applied")
			return nil
		})
	case "create-admin":
		_ = createCmd.Parse(os.Args[2:])
		err = withDatabase(func(ctx context.Context, pool *database.Pool) error {
			return createAdmin(ctx, pool, admin.CreateInput{
				Email:     *createEmail,
				Password:  *createPassword,
				FirstName: *createFirst,
				LastName:  *createLast,
				Role:      *createRole,
			}, *createJSON)
		})
	case "cleanup-sessions":
		_ = cleanupCmd.Parse(os.Args[2:])
		err = withDatabase(func(ctx context.Context, pool *database.Pool) error {
			db := pool.DB()
			svc := service.New(adminStore.NewPostgres(db), sessionStore.NewPostgres(db), service.WithLogger(quietLogger()))
			fmt.Printf("invalidated %d expired sessions\n", svc.CleanupExpiredSessions(ctx))
			return nil
		})
	case "hash-password":
		_ = hashCmd.Parse(os.Args[2:])
		err = hashPassword(os.Stdin, *hashCost)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`adminctl - Operator commands for the visa admin service

Reads VISA_DATABASE_URL (and a .env file when present) like the server.

Usage:
  adminctl <command> [flags]

Commands:
  migrate            Apply pending database migrations
  create-admin       Create an admin account
  cleanup-sessions   Mark expired sessions inactive once
  hash-password      Read a password from stdin and print its bcrypt hash

Examples:
  adminctl create-admin -email ops@example.com -password 'long-secret' -role super_admin
  echo -n 'long-secret' | adminctl hash-password

Use "adminctl <command> -h" for more information about a command.`)
}

func withDatabase(fn func(ctx context.Context, pool *database.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.UsePostgres() {
		return fmt.Errorf("VISA_DATABASE_URL is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	pool, err := database.New(ctx, database.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		return err
	}
	defer pool.Close() //nolint:errcheck // process exits right after
	return fn(ctx, pool)
}

func createAdmin(ctx context.Context, pool *database.Pool, in admin.CreateInput, jsonOutput bool) error {
	if in.Email == "" || len(in.Password) < 8 {
		return fmt.Errorf("-email and a -password of at least 8 characters are required")
	}
	db := pool.DB()
	svc := admin.NewService(adminStore.NewPostgres(db), sessionStore.NewPostgres(db), admin.WithLogger(quietLogger()))
	a, err := svc.Create(ctx, in)
	if err != nil {
		return err
	}
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{"id": a.ID.String(), "email": a.Email, "role": string(a.Role)})
	}
	fmt.Println("Admin created")
	fmt.Println("=============")
	fmt.Printf("ID:    %s\n", a.ID)
	fmt.Printf("Email: %s\n", a.Email)
	fmt.Printf("Role:  %s\n", a.Role)
	return nil
}

func hashPassword(r io.Reader, cost int) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	password := strings.TrimRight(string(raw), "\r\n")
	if password == "" {
		return fmt.Errorf("empty password on stdin")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	fmt.Println(string(hash))
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
