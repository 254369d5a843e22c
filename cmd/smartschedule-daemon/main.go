package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/adapters/notifications"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/adapters/persistence"
	allocationapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/allocation"
	availabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/availability"
	capabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/capabilityscheduling"
	cashflowapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/cashflow"
	riskapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/risk"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/optimization"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/simulation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/config"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/events"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/pidfile"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/scheduler"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "smartschedule-daemon",
		Short: "Resource scheduling and allocation daemon",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: search standard locations)")
	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewMigrateCommand applies the schema and exits.
func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := persistence.AutoMigrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Migrations applied")
			return nil
		},
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduling daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	log := config.NewLogger(cfg.Logging)

	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Warn().Err(err).Msg("failed to release PID file")
		}
	}()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	if err := persistence.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info().Str("type", cfg.Database.Type).Msg("database connected")

	app := newApplication(db, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs := scheduler.New(log)
	jobs.Register(scheduler.Job{
		Name:  "risk-periodic-check",
		Every: cfg.Jobs.RiskCheckInterval,
		Run:   app.riskDispatcher.HandleWeeklyCheck,
	})
	jobs.Register(scheduler.Job{
		Name:  "publish-missing-demands",
		Every: cfg.Jobs.MissingDemandsInterval,
		Run:   app.missingDemands.Publish,
	})
	jobs.Start(ctx)
	log.Info().Msg("daemon started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	cancel()
	done := make(chan struct{})
	go func() {
		jobs.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(cfg.Daemon.ShutdownTimeout):
		log.Warn().Msg("shutdown timeout exceeded, exiting anyway")
	}
	return nil
}

// application holds the fully wired facades. Embedders reach the system
// through these; the daemon itself only drives the risk dispatcher and the
// periodic jobs.
type application struct {
	availability        *availabilityapp.AvailabilityFacade
	capabilityScheduler *capabilityapp.CapabilityScheduler
	capabilityFinder    *capabilityapp.CapabilityFinder
	allocations         *allocationapp.AllocationFacade
	cashflow            *cashflowapp.CashFlowFacade
	riskDispatcher      *riskapp.PeriodicCheckSagaDispatcher
	missingDemands      *allocationapp.PublishMissingDemandsService
	publisher           *events.InProcessPublisher
}

func newApplication(db *gorm.DB, log zerolog.Logger) *application {
	clock := shared.NewRealClock()
	uow := database.NewUnitOfWork(db)
	publisher := events.NewInProcessPublisher(log)

	availabilityRepo := persistence.NewGormResourceAvailabilityRepository(db, rand.New(rand.NewSource(time.Now().UnixNano())))
	availabilityReadModel := persistence.NewGormAvailabilityReadModel(db)
	capabilityRepo := persistence.NewGormAllocatableCapabilityRepository(db)
	projectRepo := persistence.NewGormProjectAllocationsRepository(db)
	cashflowRepo := persistence.NewGormCashflowRepository(db)
	sagaRepo := persistence.NewGormPeriodicCheckSagaRepository(db)

	availabilityFacade := availabilityapp.NewAvailabilityFacade(availabilityRepo, availabilityReadModel, publisher, uow, clock, log)
	capabilityFinder := capabilityapp.NewCapabilityFinder(capabilityRepo, availabilityFacade)
	capabilityScheduler := capabilityapp.NewCapabilityScheduler(capabilityRepo, availabilityFacade, uow, log)
	cashflowFacade := cashflowapp.NewCashFlowFacade(cashflowRepo, publisher, uow, clock, log)
	allocationFacade := allocationapp.NewAllocationFacade(projectRepo, capabilityRepo, capabilityFinder, availabilityFacade, publisher, uow, clock, log)
	simulationFacade := simulation.NewSimulationFacade(optimization.NewOptimizationFacade())
	transfersService := allocationapp.NewPotentialTransfersService(simulationFacade, cashflowFacade, projectRepo)
	missingDemands := allocationapp.NewPublishMissingDemandsService(projectRepo, publisher, clock, log)

	notification := notifications.NewLogPushNotification(log)
	dispatcher := riskapp.NewPeriodicCheckSagaDispatcher(sagaRepo, capabilityFinder, transfersService, notification, uow, clock, log)

	events.SubscribeTyped(publisher, allocation.ProjectAllocationScheduledEventName, dispatcher.HandleProjectAllocationScheduled)
	events.SubscribeTyped(publisher, allocation.NotSatisfiedDemandsEventName, dispatcher.HandleNotSatisfiedDemands)
	events.SubscribeTyped(publisher, cashflow.EarningsRecalculatedEventName, dispatcher.HandleEarningsRecalculated)
	events.SubscribeTyped(publisher, availability.ResourceTakenOverEventName, dispatcher.HandleResourceTakenOver)

	return &application{
		availability:        availabilityFacade,
		capabilityScheduler: capabilityScheduler,
		capabilityFinder:    capabilityFinder,
		allocations:         allocationFacade,
		cashflow:            cashflowFacade,
		riskDispatcher:      dispatcher,
		missingDemands:      missingDemands,
		publisher:           publisher,
	}
}
