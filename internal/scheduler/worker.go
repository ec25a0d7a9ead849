package scheduler

import (
	"context"
	"fmt"
	"strings"

	"salon_backend/internal/email"
	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/repository"
	"salon_backend/platform/config"
	"salon_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes due tasks and delivers reminders. It runs as its own
// process (cmd/scheduler) next to the API.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskAppointmentReminder, w.handleAppointmentReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleAppointmentReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAppointmentReminderPayload(task)
	if err != nil {
		return err
	}

	apptID, err := uuid.Parse(payload.AppointmentID)
	if err != nil {
		return err
	}
	salonID, err := uuid.Parse(payload.SalonID)
	if err != nil {
		return err
	}

	appt, err := w.repo.GetByID(ctx, apptID, salonID)
	if err != nil {
		return err
	}

	// The appointment may have been cancelled or moved since the reminder
	// was enqueued. A moved appointment got a fresh reminder on reschedule.
	if !domain.Status(appt.Status).IsActive() {
		return nil
	}

	client, err := w.repo.GetClient(ctx, appt.ClientID, salonID)
	if err != nil {
		return err
	}
	if client.Email == nil || *client.Email == "" {
		return nil
	}

	svc, err := w.repo.GetService(ctx, appt.ServiceID, salonID)
	if err != nil {
		return err
	}

	salonName, err := w.repo.GetSalonName(ctx, salonID)
	if err != nil {
		return err
	}

	clientName := strings.TrimSpace(client.FirstName + " " + client.LastName)
	date := appt.Date.Format("02/01/2006")
	startTime := domain.TimeOfDay(appt.StartMinutes).String()

	if err := w.sender.SendAppointmentReminder(ctx, *client.Email, clientName, salonName, svc.Name, date, startTime); err != nil {
		w.log.Error("reminder email failed", "appointment_id", appt.ID.String(), "error", err)
		return err
	}

	w.log.Info("reminder sent", "appointment_id", appt.ID.String(), "salon_id", salonID.String())
	return nil
}
