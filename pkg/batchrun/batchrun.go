package batchrun

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrFetchFailed возвращается, когда не удалось получить набор кандидатов
	// Единственная фатальная для запуска ошибка - все остальные изолируются поэлементно
	ErrFetchFailed = errors.New("batchrun: failed to fetch candidate items")
)

// Job батч-джоб: ограниченный набор кандидатов и обработчик одного элемента
type Job[T any] interface {
	// Name имя джоба для логов и метрик
	Name() string
	// Fetch возвращает ограниченный набор кандидатов на обработку
	Fetch(ctx context.Context) ([]T, error)
	// Key идентификатор элемента для списка ошибок (ID бронирования)
	Key(item T) string
	// Process обрабатывает один элемент
	Process(ctx context.Context, item T) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Result результат запуска батч-джоба
type Result struct {
	Processed    int           // Количество успешно обработанных элементов
	Errors       int           // Количество элементов, завершившихся ошибкой
	ErrorDetails []string      // Ошибки в формате "<key>: <message>"
	Duration     time.Duration // Длительность запуска
}

// Run последовательно обрабатывает набор кандидатов джоба.
// Ошибка каждого элемента изолируется: записывается в ErrorDetails и не
// прерывает обработку остальных. Фатальна только ошибка Fetch - до начала
// цикла ещё нечего изолировать.
//
// Параллелизма внутри запуска нет намеренно: поэлементная изоляция ошибок
// остаётся тривиальной, а внешние rate limit'ы процессора не нарушаются.
func Run[T any](ctx context.Context, job Job[T], log Logger) (Result, error) {
	start := time.Now()

	log.Info("%s: starting batch run", job.Name())

	items, err := job.Fetch(ctx)
	if err != nil {
		log.Error("%s: failed to fetch candidates: %v", job.Name(), err)
		return Result{Duration: time.Since(start)}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	log.Info("%s: fetched %d candidate(s)", job.Name(), len(items))

	result := Result{
		ErrorDetails: make([]string, 0),
	}

	for _, item := range items {
		if err := job.Process(ctx, item); err != nil {
			result.Errors++
			result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf("%s: %v", job.Key(item), err))
			log.Warn("%s: item %s failed: %v", job.Name(), job.Key(item), err)
			continue
		}
		result.Processed++
	}

	result.Duration = time.Since(start)

	log.Info("%s: batch run finished, processed=%d, errors=%d, duration=%s",
		job.Name(), result.Processed, result.Errors, result.Duration)

	return result, nil
}
