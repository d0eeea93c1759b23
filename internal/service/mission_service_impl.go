package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spystrach/interimBot/internal/domain"
	"github.com/spystrach/interimBot/internal/export"
	"github.com/spystrach/interimBot/internal/mail"
	"github.com/spystrach/interimBot/internal/render"
	"github.com/spystrach/interimBot/internal/repository"
)

type missionService struct {
	repo   repository.MissionRepo
	logger *slog.Logger
}

// NewMissionService creates the mission read-side service.
func NewMissionService(repo repository.MissionRepo, logger *slog.Logger) MissionService {
	return &missionService{repo: repo, logger: logger}
}

func (s *missionService) Count(ctx context.Context) (int, error) {
	missions, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(missions), nil
}

func (s *missionService) ListText(ctx context.Context) (string, error) {
	missions, err := s.repo.GetAll(ctx)
	if err != nil {
		return "", err
	}
	return render.ListText(missions)
}

func (s *missionService) DeletionEntries(ctx context.Context) ([]DeletionEntry, error) {
	missions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]DeletionEntry, 0, len(missions))
	for _, m := range missions {
		label, err := render.Format(m, render.ModeShort)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DeletionEntry{Label: label, Key: m.Key()})
	}
	return entries, nil
}

func (s *missionService) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *missionService) SendSummary(ctx context.Context, cfg mail.SMTP) error {
	missions, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	return mail.SendSummary(ctx, cfg, missions)
}

func (s *missionService) Export(ctx context.Context, path string) ([]*domain.Mission, error) {
	missions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := export.Save(missions, path); err != nil {
		return nil, fmt.Errorf("exporting missions: %w", err)
	}
	return missions, nil
}

func (s *missionService) CleanupExported(ctx context.Context, exported []*domain.Mission) int {
	remaining := 0
	for _, m := range exported {
		if err := s.repo.Delete(ctx, m.Key()); err != nil {
			// Partial cleanup is accepted: the export already left the
			// process, so the failure is only logged.
			s.logger.Error("cleaning exported mission", "date", m.Key(), "error", err)
			remaining++
		}
	}
	return remaining
}
