package guestbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"seichi/internal/bootstrap/logging"
	"seichi/internal/errs"
	"seichi/internal/ports"
)

type seedUser struct {
	Nickname string `toml:"nickname"`
}

type seedPilgrimage struct {
	Name    string `toml:"name"`
	Address string `toml:"address"`
}

type seedRally struct {
	Name        string           `toml:"name"`
	Description string           `toml:"description"`
	Pilgrimages []seedPilgrimage `toml:"pilgrimages"`
}

type seedFile struct {
	Users   []seedUser  `toml:"users"`
	Rallies []seedRally `toml:"rallies"`
}

type SeedSummary struct {
	UsersCreated       int
	RalliesCreated     int
	PilgrimagesCreated int
}

// ImportSeed loads a TOML catalog of users, rallies and pilgrimages and
// inserts what is not already present. Re-running the same file is a no-op.
func (s *Service) ImportSeed(ctx context.Context, path string) (SeedSummary, error) {
	if ctx == nil {
		return SeedSummary{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return SeedSummary{}, errs.Wrap(err, "check context")
	}
	if err := s.checkDeps(); err != nil {
		return SeedSummary{}, err
	}

	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return SeedSummary{}, errors.New("seed file path is required")
	}

	raw, err := os.ReadFile(trimmedPath)
	if err != nil {
		return SeedSummary{}, errs.Wrapf(err, "read seed file %q", trimmedPath)
	}

	var file seedFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return SeedSummary{}, errs.Wrapf(err, "parse seed file %q", trimmedPath)
	}

	var summary SeedSummary
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		for _, user := range file.Users {
			nickname := strings.TrimSpace(user.Nickname)
			if nickname == "" {
				return errors.New("seed user nickname is required")
			}

			_, found, err := s.points.FindUserByNickname(txCtx, nickname)
			if err != nil {
				return err
			}
			if found {
				continue
			}
			if _, err := s.points.CreateUser(txCtx, nickname); err != nil {
				return err
			}
			summary.UsersCreated++
		}

		for _, rally := range file.Rallies {
			name := strings.TrimSpace(rally.Name)
			if name == "" {
				return errors.New("seed rally name is required")
			}

			existing, found, err := s.travel.FindRallyByName(txCtx, name)
			if err != nil {
				return err
			}
			if !found {
				existing, err = s.travel.CreateRally(txCtx, ports.Rally{
					Name:        name,
					Description: strings.TrimSpace(rally.Description),
				})
				if err != nil {
					return err
				}
				summary.RalliesCreated++
			}

			for _, pilgrimage := range rally.Pilgrimages {
				pilgrimageName := strings.TrimSpace(pilgrimage.Name)
				if pilgrimageName == "" {
					return fmt.Errorf("seed pilgrimage name is required in rally %q", name)
				}

				_, found, err := s.travel.FindPilgrimageByName(txCtx, existing.RallyID, pilgrimageName)
				if err != nil {
					return err
				}
				if found {
					continue
				}
				if _, err := s.travel.CreatePilgrimage(txCtx, ports.Pilgrimage{
					RallyID: existing.RallyID,
					Name:    pilgrimageName,
					Address: strings.TrimSpace(pilgrimage.Address),
				}); err != nil {
					return err
				}
				summary.PilgrimagesCreated++
			}
		}
		return nil
	}); err != nil {
		return SeedSummary{}, err
	}

	logging.Info(ctx, "seed imported",
		slog.String("path", trimmedPath),
		slog.Int("users_created", summary.UsersCreated),
		slog.Int("rallies_created", summary.RalliesCreated),
		slog.Int("pilgrimages_created", summary.PilgrimagesCreated),
	)
	return summary, nil
}
