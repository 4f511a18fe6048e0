package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"games_api/internal/models"
	"games_api/internal/storage"
)

var (
	ErrEmpty   = errors.New("no games registered")
	ErrNoMatch = errors.New("no games match the filters")
)

type GameStorage interface {
	All() []models.Game
	Len() int
	At(i int) (models.Game, error)
	Get(id int64) (models.Game, error)
	Insert(inputs []models.GameInput) []models.Game
	Update(id int64, in models.GameInput) (models.Game, error)
	Delete(id int64) (models.Game, error)
}

type GameService struct {
	storage GameStorage
	log     *slog.Logger
}

func NewGameService(s GameStorage, log *slog.Logger) *GameService {
	return &GameService{
		storage: s,
		log:     log,
	}
}

func (s *GameService) GetAll() []models.Game {
	return s.storage.All()
}

func (s *GameService) Count() int {
	return s.storage.Len()
}

func (s *GameService) First() (models.Game, error) {
	const op = "services.games.First"

	return s.at(op, 0)
}

func (s *GameService) Last() (models.Game, error) {
	const op = "services.games.Last"

	return s.at(op, -1)
}

func (s *GameService) at(op string, i int) (models.Game, error) {
	g, err := s.storage.At(i)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Game{}, fmt.Errorf("%s: %w", op, ErrEmpty)
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

// Statistics aggregates prices over the whole collection. A price that does
// not parse as a number poisons the result with NaN.
func (s *GameService) Statistics() (models.Statistics, error) {
	const op = "services.games.Statistics"

	games := s.storage.All()
	if len(games) == 0 {
		return models.Statistics{}, fmt.Errorf("%s: %w", op, ErrEmpty)
	}

	sum := 0.0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range games {
		p := PriceOf(g.Price)
		sum += p
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}

	return models.Statistics{
		Count:    len(games),
		AvgPrice: FormatFixed(sum / float64(len(games))),
		MinPrice: FormatFixed(lo),
		MaxPrice: FormatFixed(hi),
	}, nil
}

// Filter keeps the games matching every supplied criterion, in collection
// order. genre must equal ignoring case, platform must contain ignoring case.
func (s *GameService) Filter(f models.GameFilter) ([]models.Game, error) {
	const op = "services.games.Filter"

	var (
		priceMax float64
		genre    string
		platform string
	)
	if f.PriceMax != nil {
		priceMax = ParseFloat(*f.PriceMax)
	}
	if f.Genre != nil {
		genre = strings.ToLower(*f.Genre)
	}
	if f.Platform != nil {
		platform = strings.ToLower(*f.Platform)
	}

	res := make([]models.Game, 0)
	for _, g := range s.storage.All() {
		// NaN on either side never compares true
		if f.PriceMax != nil && !(PriceOf(g.Price) <= priceMax) {
			continue
		}
		if f.Genre != nil {
			v, ok := g.Genre.String()
			if !ok || strings.ToLower(v) != genre {
				continue
			}
		}
		if f.Platform != nil {
			v, ok := g.Platform.String()
			if !ok || !strings.Contains(strings.ToLower(v), platform) {
				continue
			}
		}
		res = append(res, g)
	}

	if len(res) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoMatch)
	}
	return res, nil
}

func (s *GameService) GetByID(id int64) (models.Game, error) {
	const op = "services.games.GetByID"

	g, err := s.storage.Get(id)
	if err != nil {
		return models.Game{}, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

func (s *GameService) Create(inputs []models.GameInput) []models.Game {
	created := s.storage.Insert(inputs)

	if len(created) > 0 {
		s.log.Debug(
			"games created",
			slog.Int("count", len(created)),
			slog.Int64("first_id", created[0].ID),
			slog.Int64("last_id", created[len(created)-1].ID))
	}

	return created
}

func (s *GameService) Update(id int64, in models.GameInput) (models.Game, error) {
	const op = "services.games.Update"

	g, err := s.storage.Update(id, in)
	if err != nil {
		return models.Game{}, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

func (s *GameService) Delete(id int64) (models.Game, error) {
	const op = "services.games.Delete"

	g, err := s.storage.Delete(id)
	if err != nil {
		return models.Game{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("game deleted", slog.Int64("id", id))

	return g, nil
}
