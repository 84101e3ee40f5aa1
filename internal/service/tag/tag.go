package tag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

// Engine навешивает и снимает метки обработки. На жизненный цикл отправки метки не влияют.
type Engine struct {
	repository Repository
	log        logger.Logger
	now        func() time.Time
}

func New(repository Repository, log logger.Logger) *Engine {
	return &Engine{
		repository: repository,
		log:        log.With(logger.NewField("component", "tag-engine")),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func ParseTagName(raw string) (entities.TagName, error) {
	name := entities.TagName(strings.ToLower(strings.TrimSpace(raw)))
	if !name.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, raw)
	}
	return name, nil
}

// AddTag идемпотентен: повторное добавление возвращает уже существующую метку.
func (e *Engine) AddTag(ctx context.Context, shipmentID uuid.UUID, name entities.TagName) (*entities.Tag, error) {
	if shipmentID == uuid.Nil {
		return nil, ErrInvalidShipmentID
	}
	if !name.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}

	tag, err := e.repository.AddTag(ctx, shipmentID, entities.NewTag(name, e.now()))
	if err != nil {
		return nil, fmt.Errorf("add tag: %w", err)
	}
	return tag, nil
}

// ApplyTags навешивает набор меток в рамках текущей транзакции, дубли схлопываются.
func (e *Engine) ApplyTags(ctx context.Context, shipmentID uuid.UUID, names []entities.TagName) ([]entities.Tag, error) {
	tags := make([]entities.Tag, 0, len(names))
	for _, name := range names {
		tag, err := e.AddTag(ctx, shipmentID, name)
		if err != nil {
			return nil, err
		}
		if !containsTag(tags, tag.Name) {
			tags = append(tags, *tag)
		}
	}
	return tags, nil
}

// RemoveTag ничего не делает, если метки нет.
func (e *Engine) RemoveTag(ctx context.Context, shipmentID uuid.UUID, name entities.TagName) error {
	if shipmentID == uuid.Nil {
		return ErrInvalidShipmentID
	}
	if !name.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}

	removed, err := e.repository.RemoveTag(ctx, shipmentID, name)
	if err != nil {
		return fmt.Errorf("remove tag: %w", err)
	}
	if removed {
		e.log.Info("tag removed",
			logger.NewField("shipment", shipmentID.String()),
			logger.NewField("tag", name.String()),
		)
	}
	return nil
}

func containsTag(tags []entities.Tag, name entities.TagName) bool {
	for _, t := range tags {
		if t.Name == name {
			return true
		}
	}
	return false
}
