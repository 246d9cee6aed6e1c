package main

import (
	"context"
	"fmt"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/ariefcatur/heritage-market/internal/config"
	kafkax "github.com/ariefcatur/heritage-market/internal/kafka"
	"github.com/ariefcatur/heritage-market/internal/logx"
	"github.com/ariefcatur/heritage-market/internal/orders"
	"github.com/ariefcatur/heritage-market/internal/postgres"
	"github.com/ariefcatur/heritage-market/internal/redisx"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func loadConfig() (config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// withService wires the same service the API uses, so admin actions from the
// command line publish events and refresh the status cache too.
func withService(ctx context.Context, fn func(*orders.Service) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logx.New(cfg.LogLevel, true, "marketctl")

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers(), 16, log)
	prod.Start()
	defer prod.WaitClosed()
	defer prod.Close()

	return fn(&orders.Service{
		Orders:  &orders.Repo{DB: db},
		Reviews: &orders.ReviewRepo{DB: db},
		Events:  prod,
		Cache:   redisx.StatusCache{RDB: rdb},
		Log:     log,
		Name:    "marketctl",
	})
}

func adminPrincipal(id string) (auth.Principal, error) {
	if _, err := uuid.Parse(id); err != nil {
		return auth.Principal{}, fmt.Errorf("--admin must be a uuid: %w", err)
	}
	return auth.Principal{UserID: id, Role: auth.RoleAdmin}, nil
}

type moderateFunc func(s *orders.Service, ctx context.Context, admin auth.Principal, id string, to orders.ModerationStatus) error

func moderateCmd(entity string, fn moderateFunc) *cobra.Command {
	var adminID, status string
	cmd := &cobra.Command{
		Use:   "moderate <" + entity + "-id>",
		Short: "Approve or reject a pending " + entity,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := adminPrincipal(adminID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withService(ctx, func(s *orders.Service) error {
				if err := fn(s, ctx, admin, args[0], orders.ModerationStatus(status)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", entity, args[0], status)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&adminID, "admin", "", "acting admin user id")
	cmd.Flags().StringVar(&status, "status", string(orders.ModerationApproved), "approved or rejected")
	_ = cmd.MarkFlagRequired("admin")
	return cmd
}

func productCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "product", Short: "Product moderation"}
	cmd.AddCommand(moderateCmd("product", (*orders.Service).ModerateProduct))
	return cmd
}

func sellerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "seller", Short: "Seller moderation"}
	cmd.AddCommand(moderateCmd("seller", (*orders.Service).ModerateSeller))
	return cmd
}

// marketctl order cancel <order-id> --admin <uuid>
func orderCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "order", Short: "Order administration"}

	var adminID string
	cancel := &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Emergency-cancel an order and return its stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := adminPrincipal(adminID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withService(ctx, func(s *orders.Service) error {
				o, err := s.CancelOrder(ctx, admin, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "order %s cancelled (total %s)\n", o.ID, o.TotalAmount.StringFixed(2))
				return nil
			})
		},
	}
	cancel.Flags().StringVar(&adminID, "admin", "", "acting admin user id")
	_ = cancel.MarkFlagRequired("admin")

	cmd.AddCommand(cancel)
	return cmd
}
