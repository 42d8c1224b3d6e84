// Package main contains the cli implementation of the mlql compiler. It
// uses cobra package for cli tool implementation.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/mlql/mlql/internal/config"
	"github.com/mlql/mlql/internal/ir"
	"github.com/mlql/mlql/internal/lang"
	"github.com/mlql/mlql/internal/output"
	"github.com/mlql/mlql/internal/planner"
	"github.com/mlql/mlql/internal/schema"
	"github.com/mlql/mlql/internal/sqllower"
)

var log = logrus.New()

type rootFlags struct {
	configFile string
	dbPath     string
}

func main() {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "mlql",
		Short: "MLQL query compiler",
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Database file for live schema lookup")

	rootCmd.AddCommand(parseCmd(flags))
	rootCmd.AddCommand(sqlCmd(flags))
	rootCmd.AddCommand(planCmd(flags))
	rootCmd.AddCommand(fingerprintCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readQuery returns the query text: the single positional argument, or
// stdin when the argument is "-" or absent.
func readQuery(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading query from stdin: %w", err)
	}
	return string(data), nil
}

// loadProgram accepts both input shapes: a JSON IR document (detected by a
// leading '{') and MLQL surface syntax.
func loadProgram(query string) (ir.Program, error) {
	trimmed := strings.TrimSpace(query)
	if strings.HasPrefix(trimmed, "{") {
		return ir.ParseJSON([]byte(trimmed))
	}
	return lang.ParseToIR(trimmed)
}

// newProvider builds the schema provider: a live catalog connection when a
// database is configured, otherwise the config file's table fixtures.
func newProvider(flags *rootFlags) (schema.Provider, func(), error) {
	dbPath := flags.dbPath
	var cfg *config.Config
	if flags.configFile != "" {
		loaded, err := config.Load(flags.configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
		if dbPath == "" {
			dbPath = cfg.DatabasePath
		}
	}

	if dbPath != "" {
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database %q: %w", dbPath, err)
		}
		log.WithField("database", dbPath).Debug("using live schema provider")
		return schema.NewLiveProvider(db), func() { db.Close() }, nil
	}

	if cfg != nil && len(cfg.Tables) > 0 {
		return cfg.MockProvider(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("no schema source: pass --db or a --config with [[tables]] fixtures")
}

func queryLogger(prog ir.Program) (*logrus.Entry, error) {
	fingerprint, err := prog.Fingerprint()
	if err != nil {
		return nil, err
	}
	return log.WithFields(logrus.Fields{
		"query_id":    uuid.NewV4().String(),
		"fingerprint": fingerprint,
	}), nil
}

func parseCmd(_ *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse surface syntax into canonical IR JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			query, err := readQuery(args)
			if err != nil {
				return err
			}
			prog, err := loadProgram(query)
			if err != nil {
				return err
			}
			if err := prog.Validate(); err != nil {
				return err
			}

			irJSON, err := prog.ToJSON()
			if err != nil {
				return err
			}
			fingerprint, err := prog.Fingerprint()
			if err != nil {
				return err
			}
			return emit(format, &output.Result{Fingerprint: fingerprint, IRJSON: irJSON})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or summary")
	return cmd
}

func sqlCmd(flags *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "sql [query]",
		Short: "Lower a query to a SELECT statement",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(args)
			if err != nil {
				return err
			}
			prog, err := loadProgram(query)
			if err != nil {
				return err
			}
			if err := prog.Validate(); err != nil {
				return err
			}

			provider, cleanup, err := newProvider(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			entry, err := queryLogger(prog)
			if err != nil {
				return err
			}

			sqlText, err := sqllower.New(provider).Lower(cmd.Context(), prog)
			if err != nil {
				entry.WithError(err).Error("sql lowering failed")
				return err
			}
			entry.Debug("sql lowering succeeded")

			fingerprint, err := prog.Fingerprint()
			if err != nil {
				return err
			}
			return emit(format, &output.Result{Fingerprint: fingerprint, SQL: sqlText})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "sql", "Output format: sql or summary")
	return cmd
}

func planCmd(flags *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "plan [query]",
		Short: "Translate a query into relational-plan bytes (base64)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(args)
			if err != nil {
				return err
			}
			prog, err := loadProgram(query)
			if err != nil {
				return err
			}
			if err := prog.Validate(); err != nil {
				return err
			}

			provider, cleanup, err := newProvider(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			entry, err := queryLogger(prog)
			if err != nil {
				return err
			}

			planBytes, err := planner.New(provider).TranslateBytes(cmd.Context(), prog)
			if err != nil {
				entry.WithError(err).Error("plan translation failed")
				return err
			}
			entry.WithField("plan_bytes", len(planBytes)).Debug("plan translation succeeded")

			fingerprint, err := prog.Fingerprint()
			if err != nil {
				return err
			}
			return emit(format, &output.Result{Fingerprint: fingerprint, PlanBytes: planBytes})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "plan", "Output format: plan or summary")
	return cmd
}

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [query]",
		Short: "Print a query's canonical fingerprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			query, err := readQuery(args)
			if err != nil {
				return err
			}
			prog, err := loadProgram(query)
			if err != nil {
				return err
			}
			fingerprint, err := prog.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Println(fingerprint)
			return nil
		},
	}
}

func emit(format string, result *output.Result) error {
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	rendered, err := formatter.Format(result)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
