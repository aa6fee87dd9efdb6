// Command bankadmin-admin is an operator CLI for roster management,
// audit trail inspection, and database migrations.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/meridianbank/bankadmin-api/config"
	"github.com/meridianbank/bankadmin-api/internal/bootstrap"
	"github.com/meridianbank/bankadmin-api/internal/data"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultCommandTimeout = 2 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"roster-list": {
			name:        "roster-list",
			description: "List admin roster entries",
			run:         runRosterList,
		},
		"roster-add": {
			name:        "roster-add",
			description: "Grant admin or support privileges to a subject",
			run:         runRosterAdd,
		},
		"roster-remove": {
			name:        "roster-remove",
			description: "Revoke a subject's admin privileges",
			run:         runRosterRemove,
		},
		"audit-tail": {
			name:        "audit-tail",
			description: "Show recent audit trail entries",
			run:         runAuditTail,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: bankadmin-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(os.Stdout, "  %-16s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// cliActor identifies the operator in audit entries written by CLI
// roster changes.
func cliActor() domainauth.AuthContext {
	name := "cli"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	id := "cli:" + name
	return domainauth.AuthContext{
		AdminID: id,
		Email:   name + "@cli.local",
		Profile: domainauth.AdminProfile{ID: id, Role: domainauth.RoleAdmin},
	}
}

func runMigrate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	timeout := fs.Duration("timeout", 5*time.Minute, "Maximum duration to wait for migrations to complete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *timeout <= 0 {
		return errors.New("--timeout must be greater than zero")
	}

	return withDatabase(cmdCtx, *timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")
		if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func runRosterList(cmdCtx *commandContext, _ []string) error {
	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		svc := rosterService(cmdCtx, db)
		entries, err := svc.List(ctx)
		if err != nil {
			return fmt.Errorf("list roster: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if err = writeln(w, "ID\tEmail\tRole\tAdded"); err != nil {
			return err
		}
		for _, e := range entries {
			if err = writef(w, "%s\t%s\t%s\t%s\n",
				e.ID, e.Email, e.Role, e.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
				return err
			}
		}
		if err = w.Flush(); err != nil {
			return fmt.Errorf("flush roster table: %w", err)
		}
		return writef(os.Stdout, "\nTotal: %d\n", len(entries))
	})
}

func runRosterAdd(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("roster-add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.String("id", "", "Subject ID as issued by the identity provider (required)")
	email := fs.String("email", "", "Subject email (required)")
	role := fs.String("role", "admin", "Role to grant: admin or support")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		svc := rosterService(cmdCtx, db)
		profile, err := svc.Add(ctx, cliActor(), *id, *email,
			domainauth.Role(strings.ToLower(strings.TrimSpace(*role))))
		if err != nil {
			return fmt.Errorf("add roster entry: %w", err)
		}
		return writef(os.Stdout, "Added %s (%s) with role %s\n", profile.ID, profile.Email, profile.Role)
	})
}

func runRosterRemove(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("roster-remove", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.String("id", "", "Subject ID to remove (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		return errors.New("--id is required")
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		svc := rosterService(cmdCtx, db)
		if err := svc.Remove(ctx, cliActor(), *id); err != nil {
			return fmt.Errorf("remove roster entry: %w", err)
		}
		return writef(os.Stdout, "Removed %s\n", *id)
	})
}

type auditTailOptions struct {
	Limit      int
	AdminID    string
	TargetType string
	Action     string
	Query      string
	RawJSON    bool
}

func runAuditTail(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("audit-tail", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts auditTailOptions
	fs.IntVar(&opts.Limit, "limit", 20, "Maximum entries to display")
	fs.StringVar(&opts.AdminID, "admin-id", "", "Filter by acting admin ID")
	fs.StringVar(&opts.TargetType, "target-type", "", "Filter by target type (account, wire_transfer, ...)")
	fs.StringVar(&opts.Action, "action", "", "Filter by action")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression evaluated against each entry's detail")
	fs.BoolVar(&opts.RawJSON, "json", false, "Print entries as JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		svc := service.NewAuditService(service.AuditServiceOptions{
			AuditRepo: data.NewAuditRepo(db),
			Logger:    cmdCtx.Logger,
		})

		listOpts := model.AuditListOptions{
			Limit:       opts.Limit,
			DetailQuery: opts.Query,
		}
		if opts.AdminID != "" {
			listOpts.AdminID = &opts.AdminID
		}
		if opts.TargetType != "" {
			listOpts.TargetType = &opts.TargetType
		}
		if opts.Action != "" {
			action := model.AuditAction(opts.Action)
			listOpts.Action = &action
		}

		entries, err := svc.List(ctx, listOpts)
		if err != nil {
			return fmt.Errorf("list audit entries: %w", err)
		}
		if opts.RawJSON {
			return printAuditJSON(entries)
		}
		return printAuditTable(entries)
	})
}

func printAuditJSON(entries []*model.AuditEntry) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode audit entries: %w", err)
	}
	return nil
}

func printAuditTable(entries []*model.AuditEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Time\tAdmin\tAction\tTarget\tDetail"); err != nil {
		return err
	}
	for _, e := range entries {
		detail := strings.TrimSpace(string(e.Detail))
		if detail == "{}" {
			detail = ""
		}
		if err := writef(w, "%s\t%s\t%s\t%s/%s\t%s\n",
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.AdminEmail,
			e.Action,
			e.TargetType, e.TargetID,
			detail,
		); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush audit table: %w", err)
	}
	return writef(os.Stdout, "\nTotal: %d\n", len(entries))
}

func rosterService(cmdCtx *commandContext, db *sql.DB) *service.RosterService {
	return service.NewRosterService(service.RosterServiceOptions{
		RosterRepo: data.NewAdminRepo(db),
		AuditRepo:  data.NewAuditRepo(db),
		Logger:     cmdCtx.Logger,
	})
}

func withDatabase(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(cmdCtx.Config.Postgres, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeln(w io.Writer, args ...any) error {
	if _, err := fmt.Fprintln(w, args...); err != nil {
		return fmt.Errorf("write output line: %w", err)
	}
	return nil
}
