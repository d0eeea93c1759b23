// Package flow drives the guided entry of a new mission: five questions,
// one message each, with per-step format gating.
package flow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spystrach/interimBot/internal/domain"
	"github.com/spystrach/interimBot/internal/render"
	"github.com/spystrach/interimBot/internal/repository"
)

type step int

const (
	stepAgency step = iota
	stepDate
	stepLocation
	stepStart
	stepEnd
)

// Keyboard tells the transport which reply keyboard to attach.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	// KeyboardAgencies shows one button per recognized agency.
	KeyboardAgencies
	// KeyboardRemove clears a previously shown reply keyboard.
	KeyboardRemove
)

// Reply is what the engine wants said back to the chat. An empty Texts
// slice means stay silent (the user retries the current step).
type Reply struct {
	Texts    []string
	Keyboard Keyboard
}

type draft struct {
	step    step
	mission domain.Mission
}

// Engine holds one in-progress draft per chat.
type Engine struct {
	repo   repository.MissionRepo
	logger *slog.Logger
	drafts map[int64]*draft
}

// NewEngine creates a flow engine persisting completed drafts to repo.
func NewEngine(repo repository.MissionRepo, logger *slog.Logger) *Engine {
	return &Engine{
		repo:   repo,
		logger: logger,
		drafts: make(map[int64]*draft),
	}
}

// Active reports whether a draft is in progress for the chat.
func (e *Engine) Active(chatID int64) bool {
	_, ok := e.drafts[chatID]
	return ok
}

// Start opens a new draft for the chat and asks the first question.
// Any previous draft for the chat is discarded.
func (e *Engine) Start(chatID int64) Reply {
	e.drafts[chatID] = &draft{step: stepAgency}
	return Reply{
		Texts: []string{
			"Début de l'enregistrement d'une nouvelle mission\n" +
				"entre '/stop' pour annuler à tout moment\n\n" +
				"Avec quelle agence était la mission ?",
		},
		Keyboard: KeyboardAgencies,
	}
}

// Cancel discards the chat's draft. The second return is false when there
// was nothing to cancel.
func (e *Engine) Cancel(chatID int64) (Reply, bool) {
	if _, ok := e.drafts[chatID]; !ok {
		return Reply{}, false
	}
	delete(e.drafts, chatID)
	return Reply{
		Texts:    []string{"annulation de l'enregistrement"},
		Keyboard: KeyboardRemove,
	}, true
}

// HandleMessage feeds one user message to the chat's draft. The second
// return is false when no draft is active and the message belongs to
// someone else. Input failing the current step's format gate is consumed
// silently: the step simply does not advance.
func (e *Engine) HandleMessage(ctx context.Context, chatID int64, text string) (Reply, bool) {
	d, ok := e.drafts[chatID]
	if !ok {
		return Reply{}, false
	}

	switch d.step {
	case stepAgency:
		agency, ok := domain.ParseAgency(text)
		if !ok {
			return Reply{}, true
		}
		d.mission.Agency = agency
		d.step = stepDate
		return Reply{
			Texts:    []string{"ok, la date (en format 'JJ MM AAAA') de ta mission ?"},
			Keyboard: KeyboardRemove,
		}, true

	case stepDate:
		key, err := domain.ParseDate(text)
		if err != nil {
			return Reply{}, true
		}
		d.mission.Date = key
		d.step = stepLocation
		return Reply{Texts: []string{"ok, maintenant le lieu ?"}}, true

	case stepLocation:
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "/") {
			return Reply{}, true
		}
		d.mission.Location = trimmed
		d.step = stepStart
		return Reply{Texts: []string{"l'heure réelle (en format 'HH MM') de début de mission ?"}}, true

	case stepStart:
		clock, err := domain.ParseClock(text)
		if err != nil {
			return Reply{}, true
		}
		d.mission.StartTime = clock
		d.step = stepEnd
		return Reply{Texts: []string{"l'heure réelle (en format 'HH MM') de fin de mission ?"}}, true

	case stepEnd:
		clock, err := domain.ParseClock(text)
		if err != nil {
			return Reply{}, true
		}
		d.mission.EndTime = clock
		return e.complete(ctx, chatID, d), true
	}

	return Reply{}, true
}

// complete recaps the collected fields, attempts the store write, and
// resets the chat to its inactive state. A duplicate date is logged but
// not surfaced; the machine resets either way.
func (e *Engine) complete(ctx context.Context, chatID int64, d *draft) Reply {
	delete(e.drafts, chatID)

	texts := make([]string, 0, 2)
	if recap, err := render.Format(&d.mission, render.ModeRecap); err == nil {
		texts = append(texts, "récapitulatif :\n"+recap)
	}

	if err := e.repo.Create(ctx, &d.mission); err != nil {
		e.logger.Error("saving mission", "date", d.mission.Date, "error", err)
		return Reply{Texts: texts}
	}

	texts = append(texts, "ok c'est bien enregistré")
	return Reply{Texts: texts}
}
