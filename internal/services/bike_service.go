package services

import (
	"context"
	"time"

	"github.com/bikebay/server/internal/apperr"
	"github.com/bikebay/server/internal/models"
	"github.com/google/uuid"
)

type BikeService struct {
	bikeRepo models.BikeRepo
}

func NewBikeService(bikeRepo models.BikeRepo) *BikeService {
	return &BikeService{
		bikeRepo: bikeRepo,
	}
}

// updatableBikeFields is the whitelist for partial updates.
var updatableBikeFields = map[string]bool{
	"title":       true,
	"description": true,
	"image":       true,
	"price":       true,
	"location":    true,
	"available":   true,
}

func (bks *BikeService) CreateBike(ctx context.Context, actor models.Actor, bike *models.Bike) (*models.Bike, error) {
	if !actor.IsHoster() && !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only hosters can list bikes")
	}

	if err := models.Validate.Struct(bike); err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalid, "invalid bike data", err)
	}

	now := time.Now()
	if bike.ID == uuid.Nil {
		bike.ID = uuid.New()
	}
	bike.HosterID = actor.ID
	bike.Available = true
	bike.CreatedAt = now
	bike.UpdatedAt = now

	return bks.bikeRepo.CreateBike(ctx, bike)
}

func (bks *BikeService) GetBike(ctx context.Context, id uuid.UUID) (*models.BikeWithHoster, error) {
	if id == uuid.Nil {
		return nil, apperr.New(apperr.CodeInvalid, "invalid bike ID")
	}
	return bks.bikeRepo.GetBikeWithHoster(ctx, id)
}

func (bks *BikeService) ListAvailableBikes(ctx context.Context) ([]*models.BikeWithHoster, error) {
	return bks.bikeRepo.ListAvailableBikes(ctx)
}

func (bks *BikeService) ListBikesByHoster(ctx context.Context, hosterID uuid.UUID) ([]*models.BikeWithHoster, error) {
	if hosterID == uuid.Nil {
		return nil, apperr.New(apperr.CodeInvalid, "invalid hoster ID")
	}
	return bks.bikeRepo.ListBikesByHoster(ctx, hosterID)
}

func (bks *BikeService) UpdateBike(ctx context.Context, actor models.Actor, id uuid.UUID, fields map[string]interface{}) (*models.Bike, error) {
	bike, err := bks.bikeRepo.GetBikeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if bike.HosterID != actor.ID && !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "you can only update your own bikes")
	}

	filtered := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		if !updatableBikeFields[key] {
			continue
		}
		if key == "price" {
			price, ok := value.(float64)
			if !ok || price <= 0 {
				return nil, apperr.New(apperr.CodeInvalid, "price must be greater than zero")
			}
		}
		filtered[key] = value
	}
	if len(filtered) == 0 {
		return nil, apperr.New(apperr.CodeInvalid, "no updatable fields provided")
	}

	return bks.bikeRepo.UpdateBike(ctx, id, filtered)
}

func (bks *BikeService) DeleteBike(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	bike, err := bks.bikeRepo.GetBikeByID(ctx, id)
	if err != nil {
		return err
	}

	if bike.HosterID != actor.ID && !actor.IsAdmin() {
		return apperr.New(apperr.CodeForbidden, "you can only delete your own bikes")
	}

	return bks.bikeRepo.DeleteBike(ctx, id)
}
