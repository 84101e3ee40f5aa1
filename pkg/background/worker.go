package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"tracker/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Task периодическая задача. Interval <= 0 означает только прогрев без повторов.
type Task interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

type workerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type Worker struct {
	log   workerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи параллельно и запускает их по расписанию до отмены ctx.
// Ошибка или паника при прогреве возвращается из New, периодические только логируются.
func New(ctx context.Context, log workerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}

	warmup, warmupCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		warmup.Go(func() error {
			if err := worker.runOnce(warmupCtx, task); err != nil {
				return fmt.Errorf("warmup %s: %w", task.Name(), err)
			}
			return nil
		})
	}
	if err := warmup.Wait(); err != nil {
		return nil, err
	}

	for _, task := range tasks {
		interval := task.Interval()
		if interval <= 0 {
			log.Warn("task has no interval, periodic runs disabled",
				logger.NewField("task", task.Name()),
			)
			continue
		}

		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.loop(ctx, task, interval)
		}()
	}

	return worker, nil
}

// Wait блокируется, пока все циклы не завершатся после отмены ctx из New.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) Tasks() []string {
	names := make([]string, 0, len(w.tasks))
	for _, task := range w.tasks {
		names = append(names, task.Name())
	}
	return names
}

func (w *Worker) loop(ctx context.Context, task Task, interval time.Duration) {
	w.log.Info("task scheduled",
		logger.NewField("task", task.Name()),
		logger.NewField("interval", interval.String()),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("task stopped", logger.NewField("task", task.Name()))
			return
		case <-ticker.C:
			if err := w.runOnce(ctx, task); err != nil {
				w.log.Error("task failed",
					logger.NewField("task", task.Name()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

// runOnce превращает панику задачи в ошибку и пишет метрики запуска.
func (w *Worker) runOnce(ctx context.Context, task Task) (err error) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			w.log.Error("task panic",
				logger.NewField("task", task.Name()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
		}

		result := resultOK
		if err != nil {
			result = resultError
		}
		TaskRunsTotal.WithLabelValues(task.Name(), result).Inc()
		TaskDuration.WithLabelValues(task.Name()).Observe(time.Since(started).Seconds())
	}()

	return task.Run(ctx)
}
