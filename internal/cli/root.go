// Package cli implements posctl, the shop's admin command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tokobajukeren/pos-api/internal/config"
	"github.com/tokobajukeren/pos-api/internal/db"
	"github.com/tokobajukeren/pos-api/internal/logger"
	"github.com/tokobajukeren/pos-api/internal/pkg/jwthelper"
	"github.com/tokobajukeren/pos-api/internal/repository"
	"github.com/tokobajukeren/pos-api/internal/repository/dao"
	"github.com/tokobajukeren/pos-api/internal/service"
)

var errNotConfirmed = errors.New("this command deletes data, rerun it with --yes")

// env is what every subcommand works on. It is built before the subcommand
// runs and closed after.
type env struct {
	conf *config.AppConfig
	db   *gorm.DB
	loc  *time.Location

	auth    *service.AuthService
	backups *service.BackupService
	reports *service.ReportService
}

func newEnv(conf *config.AppConfig, gdb *gorm.DB) (*env, error) {
	loc, err := conf.Store.Location()
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(dao.NewUserDAO(gdb))
	products := repository.NewProductRepository(dao.NewProductDAO(gdb))
	members := repository.NewMemberRepository(dao.NewMemberDAO(gdb))
	transactions := repository.NewTransactionRepository(dao.NewTransactionDAO(gdb))
	dataset := repository.NewDatasetRepository(dao.NewDatasetDAO(gdb))

	// Carts live in the server process; the CLI only needs a place to drop them.
	carts := service.NewCartService(products)

	return &env{
		conf:    conf,
		db:      gdb,
		loc:     loc,
		auth:    service.NewAuthService(users, jwthelper.NewBlocklist(), carts),
		backups: service.NewBackupService(products, members, transactions, dataset, carts),
		reports: service.NewReportService(transactions, members, loc, conf.Store.TopProducts),
	}, nil
}

type options struct {
	configPath string
	env        *env
}

// NewRootCommand builds posctl. defaultConfig is used when --config is not
// given.
func NewRootCommand(defaultConfig string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Administer the clothing store point of sale",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize config -> %w", err)
			}
			if err = logger.Init(conf.API.Environment); err != nil {
				return fmt.Errorf("failed to initialize logger -> %w", err)
			}
			// Keep the terminal output for the command itself.
			_ = logger.SetLevel("warn")

			gdb, err := db.Open(conf)
			if err != nil {
				return fmt.Errorf("failed to initialize database -> %w", err)
			}

			opts.env, err = newEnv(conf, gdb)
			if err != nil {
				_ = db.Close(gdb)
				return err
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.env == nil {
				return nil
			}
			return db.Close(opts.env.db)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfig, "path to config.yml")

	root.AddCommand(
		newUserCommand(opts),
		newBackupCommand(opts),
		newResetCommand(opts),
		newReportCommand(opts),
	)

	return root
}

// Execute runs posctl with os.Args and returns the process exit code.
func Execute(defaultConfig string) int {
	if err := NewRootCommand(defaultConfig).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// output returns the file named by path, or w when path is empty or "-".
func output(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
