package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tavola/internal/domain"
	"tavola/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	TaskUpsert       = "upsert"
	TaskDelete       = "delete"
	TaskUpdateStatus = "update_status"
)

// SheetTask describes a unit of spreadsheet mirror work.
type SheetTask struct {
	Type      string          `json:"type"`
	BookingID string          `json:"booking_id"`
	Booking   *models.Booking `json:"booking,omitempty"`
	Status    string          `json:"status,omitempty"`
	Retries   int             `json:"retries"`
	CreatedAt time.Time       `json:"created_at"`
}

// SheetsWorker drains queued mirror tasks into the spreadsheet. Tasks go to
// redis when it is up so they survive restarts; a buffered channel covers
// the rest.
type SheetsWorker struct {
	sheets        domain.SheetsWriter
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan SheetTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	logger        *zerolog.Logger
}

// NewSheetsWorker builds a worker with sane defaults.
func NewSheetsWorker(sheets domain.SheetsWriter, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *SheetsWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &SheetsWorker{
		sheets:        sheets,
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan SheetTask, 128),
		redisQueueKey: "sheets:queue",
		deadLetterKey: "sheets:deadletter",
		pollInterval:  2 * time.Second,
		logger:        logger,
	}
}

func (w *SheetsWorker) EnqueueUpsert(ctx context.Context, booking *models.Booking) error {
	if booking == nil || booking.ID == "" {
		return errors.New("booking id is required")
	}
	return w.enqueue(ctx, SheetTask{
		Type:      TaskUpsert,
		BookingID: booking.ID,
		Booking:   booking,
		CreatedAt: time.Now(),
	})
}

func (w *SheetsWorker) EnqueueStatus(ctx context.Context, bookingID, status string) error {
	if bookingID == "" || status == "" {
		return errors.New("booking id and status are required")
	}
	return w.enqueue(ctx, SheetTask{
		Type:      TaskUpdateStatus,
		BookingID: bookingID,
		Status:    status,
		CreatedAt: time.Now(),
	})
}

func (w *SheetsWorker) EnqueueDelete(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return errors.New("booking id is required")
	}
	return w.enqueue(ctx, SheetTask{
		Type:      TaskDelete,
		BookingID: bookingID,
		CreatedAt: time.Now(),
	})
}

// enqueue prefers redis for durability and falls back to the channel.
func (w *SheetsWorker) enqueue(ctx context.Context, task SheetTask) error {
	if w.redis != nil {
		if err := w.pushRedis(ctx, task); err != nil {
			w.logger.Warn().Err(err).Msg("redis push failed, falling back to memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- task:
		return nil
	default:
		return errors.New("sheets queue is full")
	}
}

// Start launches the main loop; stops when ctx is done.
func (w *SheetsWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("sheets worker started")
	defer w.logger.Info().Msg("sheets worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, t)
			continue
		}

		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, t)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.pollInterval):
		}
	}
}

func (w *SheetsWorker) tryLocalQueue() (SheetTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return SheetTask{}, false
	}
}

func (w *SheetsWorker) tryRedis(ctx context.Context) (SheetTask, bool) {
	if w.redis == nil {
		return SheetTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
			return SheetTask{}, false
		}
		w.logger.Error().Err(err).Msg("redis BRPOP error")
		return SheetTask{}, false
	}
	if len(res) != 2 {
		return SheetTask{}, false
	}
	var task SheetTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.logger.Error().Err(err).Msg("decode redis task")
		return SheetTask{}, false
	}
	return task, true
}

func (w *SheetsWorker) processTask(ctx context.Context, task SheetTask) {
	if err := w.handleSheetTask(ctx, task); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}
}

func (w *SheetsWorker) handleSheetTask(ctx context.Context, task SheetTask) error {
	switch task.Type {
	case TaskUpsert:
		if task.Booking == nil {
			return errors.New("booking payload missing")
		}
		return w.sheets.UpsertBooking(ctx, task.Booking)
	case TaskDelete:
		return w.sheets.DeleteBookingRow(ctx, task.BookingID)
	case TaskUpdateStatus:
		if task.Status == "" {
			return errors.New("status missing")
		}
		return w.sheets.UpdateBookingStatus(ctx, task.BookingID, task.Status)
	default:
		return fmt.Errorf("unknown task type: %s", task.Type)
	}
}

func (w *SheetsWorker) retryOrFail(ctx context.Context, task SheetTask, cause error) {
	task.Retries++
	if task.Retries >= w.retryPolicy.MaxRetries {
		w.logger.Error().Err(cause).
			Str("booking_id", task.BookingID).
			Str("task", task.Type).
			Int("retries", task.Retries).
			Msg("sheets task failed permanently")
		w.pushDeadLetter(ctx, task)
		return
	}

	delay := w.retryPolicy.NextDelay(task.Retries)
	w.logger.Warn().Err(cause).
		Str("booking_id", task.BookingID).
		Str("task", task.Type).
		Dur("retry_in", delay).
		Msg("sheets task failed, retrying")

	time.AfterFunc(delay, func() {
		if err := w.enqueue(context.Background(), task); err != nil {
			w.logger.Error().Err(err).Str("booking_id", task.BookingID).Msg("requeue failed")
		}
	})
}

func (w *SheetsWorker) pushRedis(ctx context.Context, task SheetTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.redisQueueKey, data).Err()
}

func (w *SheetsWorker) pushDeadLetter(ctx context.Context, task SheetTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.logger.Error().Err(err).Str("booking_id", task.BookingID).Msg("encode deadletter")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Str("booking_id", task.BookingID).Msg("deadletter push")
	}
}
