// Package dentist manages the practitioner directory and weekly templates.
package dentist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	dentistRepo "clinio/database/repository/dentist"
	"clinio/models"
	"clinio/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	directoryCacheKey = "dentists:directory"
	directoryCacheTTL = 5 * time.Minute
)

type DentistService interface {
	// RegisterDentist adds a practitioner to the directory. New dentists are
	// active but unbookable until a weekly template is set.
	RegisterDentist(req models.DentistRegistrationRequest) (*models.Dentist, error)
	// GetDentistByID fetches a single dentist; nil error with nil result never occurs.
	GetDentistByID(id string) (*models.Dentist, error)
	// ListDentists returns the full directory, served from cache when warm.
	ListDentists(ctx context.Context) ([]models.Dentist, error)
	// SetWorkingHours normalizes and replaces the weekly template.
	SetWorkingHours(id string, hours models.WeeklyHours) (*models.Dentist, error)
	// SetActive flips whether the dentist accepts new bookings.
	SetActive(id string, active bool) (*models.Dentist, error)
}

// DefaultDentistService is the production implementation.
type DefaultDentistService struct {
	Repo dentistRepo.DentistRepository
}

func (s *DefaultDentistService) RegisterDentist(req models.DentistRegistrationRequest) (*models.Dentist, error) {
	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("RegisterDentist: failed to check for existing dentist", zap.Error(err))
		return nil, fmt.Errorf("failed to register dentist, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a dentist with this email already exists")
	}

	now := time.Now()
	dentist := &models.Dentist{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(dentist); err != nil {
		utils.GetLogger().Error("RegisterDentist: failed to create dentist", zap.Error(err))
		return nil, fmt.Errorf("failed to register dentist, please try again")
	}

	s.invalidateDirectoryCache()
	return dentist, nil
}

func (s *DefaultDentistService) GetDentistByID(id string) (*models.Dentist, error) {
	dentist, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("GetDentistByID: failed to fetch dentist", zap.String("dentistID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch dentist")
	}
	if dentist == nil {
		return nil, fmt.Errorf("dentist with id %s not found", id)
	}
	return dentist, nil
}

// ListDentists serves the directory from Redis when possible. A cold or
// failing cache degrades to a direct read, never to an error.
func (s *DefaultDentistService) ListDentists(ctx context.Context) ([]models.Dentist, error) {
	client := utils.GetCacheClient()

	if data, err := client.Get(ctx, directoryCacheKey).Result(); err == nil {
		var cached []models.Dentist
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return cached, nil
		}
	} else if err != redis.Nil {
		utils.GetLogger().Warn("ListDentists: cache read failed", zap.Error(err))
	}

	dentists, err := s.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("ListDentists: failed to fetch dentists", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch dentists")
	}

	if data, err := json.Marshal(dentists); err == nil {
		if err := client.Set(ctx, directoryCacheKey, data, directoryCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("ListDentists: cache write failed", zap.Error(err))
		}
	}
	return dentists, nil
}

func (s *DefaultDentistService) SetWorkingHours(id string, hours models.WeeklyHours) (*models.Dentist, error) {
	normalized, err := hours.Normalize()
	if err != nil {
		return nil, fmt.Errorf("invalid working hours: %w", err)
	}

	dentist, err := s.Repo.SetWorkingHours(id, normalized)
	if err != nil {
		utils.GetLogger().Error("SetWorkingHours: failed to update template", zap.String("dentistID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update working hours")
	}
	if dentist == nil {
		return nil, fmt.Errorf("dentist with id %s not found", id)
	}

	s.invalidateDirectoryCache()
	return dentist, nil
}

func (s *DefaultDentistService) SetActive(id string, active bool) (*models.Dentist, error) {
	dentist, err := s.Repo.SetActive(id, active)
	if err != nil {
		utils.GetLogger().Error("SetActive: failed to update dentist", zap.String("dentistID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update dentist")
	}
	if dentist == nil {
		return nil, fmt.Errorf("dentist with id %s not found", id)
	}

	s.invalidateDirectoryCache()
	return dentist, nil
}

func (s *DefaultDentistService) invalidateDirectoryCache() {
	if err := utils.GetCacheClient().Del(context.Background(), directoryCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate dentist directory cache", zap.Error(err))
	}
}
