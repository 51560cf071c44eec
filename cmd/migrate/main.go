// Command migrate applies the schema migration catalog or prints the
// applied-migrations ledger.
//
// Usage:
//
//	migrate [flags]          apply all pending migrations
//	migrate [flags] status   print the ledger
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jobhunter/identity/internal/app"
	"github.com/jobhunter/identity/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	cmd := "up"
	if args := flagArgs(); len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "up":
		if err := a.Migrate(ctx); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		fmt.Println("migrations applied")
	case "status":
		if err := printStatus(ctx, a); err != nil {
			log.Fatalf("status failed: %v", err)
		}
	default:
		log.Fatalf("unknown command %q (expected \"up\" or \"status\")", cmd)
	}
}

// flagArgs returns the positional arguments, skipping flag pairs consumed
// by config.LoadConfig.
func flagArgs() []string {
	var out []string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 0 && arg[0] == '-' {
			// "-flag value" consumes the next argument, "-flag=value" does not
			if !strings.Contains(arg, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

func printStatus(ctx context.Context, a *app.App) error {
	if err := a.Migrator().EnsureLedger(ctx); err != nil {
		return err
	}
	records, err := a.Migrator().ListApplied(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no migrations applied")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%s  %s  (applied %s)\n",
			r.Version, r.Description, r.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
