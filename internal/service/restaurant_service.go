package service

import (
	"context"
	"errors"
	"time"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/repository"
)

// RestaurantService covers the simple record stores around the order
// core: restaurants, waiters and the daily announcement board.
type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
	waiterRepo     repository.WaiterRepository
}

// NewRestaurantService creates a new instance of RestaurantService.
func NewRestaurantService(restaurantRepo repository.RestaurantRepository, waiterRepo repository.WaiterRepository) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		waiterRepo:     waiterRepo,
	}
}

func (s *RestaurantService) CreateRestaurant(ctx context.Context, restaurant *entity.Restaurant) (*entity.Restaurant, error) {
	if restaurant.Name == "" {
		return nil, errors.New("restaurant name is required")
	}

	created, err := s.restaurantRepo.CreateRestaurant(ctx, restaurant)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating restaurant")
		return nil, err
	}
	return created, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id int) (*entity.Restaurant, error) {
	return s.restaurantRepo.GetRestaurantByID(ctx, id)
}

func (s *RestaurantService) ListRestaurants(ctx context.Context) ([]entity.Restaurant, error) {
	return s.restaurantRepo.ListRestaurants(ctx)
}

func (s *RestaurantService) CreateWaiter(ctx context.Context, waiter *entity.Waiter) (*entity.Waiter, error) {
	if waiter.Name == "" {
		return nil, errors.New("waiter name is required")
	}

	// the parent restaurant must exist
	if _, err := s.restaurantRepo.GetRestaurantByID(ctx, waiter.RestaurantID); err != nil {
		return nil, err
	}

	created, err := s.waiterRepo.CreateWaiter(ctx, waiter)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating waiter")
		return nil, err
	}
	return created, nil
}

func (s *RestaurantService) ListWaiters(ctx context.Context, restaurantID int) ([]entity.Waiter, error) {
	return s.waiterRepo.ListByRestaurant(ctx, restaurantID)
}

// CreateNote posts a note, event or promotion to the announcement
// board, defaulting the date to today (UTC).
func (s *RestaurantService) CreateNote(ctx context.Context, note *entity.WaiterNote) (*entity.WaiterNote, error) {
	switch note.Type {
	case entity.NoteTypeNote, entity.NoteTypeEvent, entity.NoteTypePromotion:
	default:
		return nil, errors.New("note type must be note, event or promotion")
	}
	if note.Content == "" {
		return nil, errors.New("note content is required")
	}
	if note.DateISO == "" {
		note.DateISO = time.Now().UTC().Format("2006-01-02")
	}

	if _, err := s.waiterRepo.GetWaiterByID(ctx, note.WaiterID); err != nil {
		return nil, err
	}

	created, err := s.waiterRepo.CreateNote(ctx, note)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating waiter note")
		return nil, err
	}
	return created, nil
}

// TodaysAnnouncements returns today's notes for a restaurant.
func (s *RestaurantService) TodaysAnnouncements(ctx context.Context, restaurantID int) ([]entity.WaiterNote, error) {
	today := time.Now().UTC().Format("2006-01-02")
	return s.waiterRepo.ListNotesByDate(ctx, restaurantID, today)
}
