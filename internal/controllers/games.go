package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"games_api/internal/models"
	"games_api/internal/services"
	"games_api/internal/storage"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type GameServicer interface {
	GetAll() []models.Game
	Count() int
	First() (models.Game, error)
	Last() (models.Game, error)
	Statistics() (models.Statistics, error)
	Filter(f models.GameFilter) ([]models.Game, error)
	GetByID(id int64) (models.Game, error)
	Create(inputs []models.GameInput) []models.Game
	Update(id int64, in models.GameInput) (models.Game, error)
	Delete(id int64) (models.Game, error)
}

type CountResponse struct {
	Count int `json:"count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DeleteResponse struct {
	Message string      `json:"message"`
	Record  models.Game `json:"record"`
}

type GameController struct {
	service GameServicer
	log     *slog.Logger
}

func NewGameController(s GameServicer, log *slog.Logger) *GameController {
	return &GameController{
		service: s,
		log:     log,
	}
}

// GetAll godoc
// @Summary      List games
// @Description  Returns every game in insertion order
// @Tags         games
// @Produce      json
// @Success      200  {array}   models.Game
// @Router       /games [get]
func (c *GameController) GetAll(w http.ResponseWriter, r *http.Request) {
	c.respond(w, http.StatusOK, c.service.GetAll())
}

// Count godoc
// @Summary      Count games
// @Tags         games
// @Produce      json
// @Success      200  {object}  CountResponse
// @Router       /games/count [get]
func (c *GameController) Count(w http.ResponseWriter, r *http.Request) {
	c.respond(w, http.StatusOK, CountResponse{Count: c.service.Count()})
}

// First godoc
// @Summary      First registered game
// @Tags         games
// @Produce      json
// @Success      200  {object}  models.Game
// @Failure      404  {object}  ErrorResponse
// @Router       /games/first [get]
func (c *GameController) First(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.First"

	res, err := c.service.First()
	if err != nil {
		c.fail(w, op, err)
		return
	}

	c.respond(w, http.StatusOK, res)
}

// Last godoc
// @Summary      Last registered game
// @Tags         games
// @Produce      json
// @Success      200  {object}  models.Game
// @Failure      404  {object}  ErrorResponse
// @Router       /games/last [get]
func (c *GameController) Last(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Last"

	res, err := c.service.Last()
	if err != nil {
		c.fail(w, op, err)
		return
	}

	c.respond(w, http.StatusOK, res)
}

// Statistics godoc
// @Summary      Price statistics
// @Description  Count, average, minimum and maximum price, two decimals each
// @Tags         games
// @Produce      json
// @Success      200  {object}  models.Statistics
// @Failure      404  {object}  ErrorResponse
// @Router       /games/statistics [get]
func (c *GameController) Statistics(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Statistics"

	res, err := c.service.Statistics()
	if err != nil {
		c.fail(w, op, err)
		return
	}

	c.respond(w, http.StatusOK, res)
}

// Filter treats a query key as supplied whenever it is present, even empty.
//
// @Summary      Filter games
// @Tags         games
// @Produce      json
// @Param        priceMax  query     number  false  "inclusive price bound"
// @Param        genre     query     string  false  "genre, case-insensitive"
// @Param        platform  query     string  false  "platform substring, case-insensitive"
// @Success      200       {array}   models.Game
// @Failure      404       {object}  MessageResponse
// @Router       /games/filter [get]
func (c *GameController) Filter(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Filter"

	query := r.URL.Query()
	param := func(key string) *string {
		if _, ok := query[key]; !ok {
			return nil
		}
		v := query.Get(key)
		return &v
	}

	res, err := c.service.Filter(models.GameFilter{
		PriceMax: param("priceMax"),
		Genre:    param("genre"),
		Platform: param("platform"),
	})
	if err != nil {
		c.fail(w, op, err)
		return
	}

	c.respond(w, http.StatusOK, res)
}

// GetByID godoc
// @Summary      Get game by ID
// @Tags         games
// @Produce      json
// @Param        id   path      int  true  "game ID"
// @Success      200  {object}  models.Game
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id} [get]
func (c *GameController) GetByID(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetByID"

	id, ok := services.ParseID(chi.URLParam(r, "id"))
	if !ok {
		c.fail(w, op, storage.ErrNotFound)
		return
	}

	res, err := c.service.GetByID(id)
	if err != nil {
		c.fail(w, op, err)
		return
	}

	c.respond(w, http.StatusOK, res)
}

// Create accepts a single object or an array of objects. Array elements
// that are not objects still produce a record, with every field unset.
//
// @Summary      Create games
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        games  body      models.GameInput  true  "a game or an array of games"
// @Success      201    {array}   models.Game
// @Failure      400    {object}  ErrorResponse
// @Router       /games [post]
func (c *GameController) Create(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Create"

	body, err := readBody(w, r)
	if err != nil {
		c.badRequest(w, op, err)
		return
	}

	var inputs []models.GameInput
	switch {
	case len(body) == 0:
		inputs = []models.GameInput{{}}
	case body[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			c.badRequest(w, op, err)
			return
		}
		inputs = make([]models.GameInput, 0, len(items))
		for _, item := range items {
			var in models.GameInput
			if isObject(item) {
				if err := json.Unmarshal(item, &in); err != nil {
					c.badRequest(w, op, err)
					return
				}
			}
			inputs = append(inputs, in)
		}
	case body[0] == '{':
		var in models.GameInput
		if err := json.Unmarshal(body, &in); err != nil {
			c.badRequest(w, op, err)
			return
		}
		inputs = []models.GameInput{in}
	default:
		c.badRequest(w, op, errors.New("body must be an object or an array"))
		return
	}

	c.respond(w, http.StatusCreated, c.service.Create(inputs))
}

// Update godoc
// @Summary      Update game
// @Description  Overwrites only the fields present in the body
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "game ID"
// @Param        game  body      models.GameInput  true  "fields to change"
// @Success      200   {object}  models.Game
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /games/{id} [put]
func (c *GameController) Update(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Update"

	body, err := readBody(w, r)
	if err != nil {
		c.badRequest(w, op, err)
		return
	}

	// the body is validated before the id is looked at
	var in models.GameInput
	switch {
	case len(body) == 0:
	case body[0] == '{':
		if err := json.Unmarshal(body, &in); err != nil {
			c.badRequest(w, op, err)
			return
		}
	case body[0] == '[' && json.Valid(body):
		// an array carries no named fields, so nothing changes
	default:
		c.badRequest(w, op, errors.New("body must be an object"))
		return
	}

	id, ok := services.ParseID(chi.URLParam(r, "id"))
	if !ok {
		c.fail(w, op, storage.ErrNotFound)
		return
	}

	res, err := c.service.Update(id, in)
	if err != nil {
		c.fail(w, op, err)
		return
	}

	c.respond(w, http.StatusOK, res)
}

// Delete godoc
// @Summary      Delete game
// @Tags         games
// @Produce      json
// @Param        id   path      int  true  "game ID"
// @Success      200  {object}  DeleteResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id} [delete]
func (c *GameController) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Delete"

	id, ok := services.ParseID(chi.URLParam(r, "id"))
	if !ok {
		c.fail(w, op, storage.ErrNotFound)
		return
	}

	res, err := c.service.Delete(id)
	if err != nil {
		c.fail(w, op, err)
		return
	}

	c.log.Info("game removed", slog.String("operation", op), slog.Int64("id", res.ID))

	c.respond(w, http.StatusOK, DeleteResponse{Message: MsgDeleted, Record: res})
}

func (c *GameController) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrNoMatch):
		c.log.Debug(ErrNoFilterMatch.Error(), slog.String("operation", op))
		c.respond(w, http.StatusNotFound, MessageResponse{Message: ErrNoFilterMatch.Error()})
	case errors.Is(err, services.ErrEmpty):
		c.log.Debug(ErrNoGames.Error(), slog.String("operation", op))
		c.respond(w, http.StatusNotFound, ErrorResponse{Error: ErrNoGames.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.log.Debug(ErrNotFound.Error(), slog.String("operation", op))
		c.respond(w, http.StatusNotFound, ErrorResponse{Error: ErrNotFound.Error()})
	default:
		c.log.Error(
			ErrInternal.Error(),
			slog.String("operation", op),
			slog.String("error", err.Error()))
		c.respond(w, http.StatusInternalServerError, ErrorResponse{Error: ErrInternal.Error()})
	}
}

func (c *GameController) badRequest(w http.ResponseWriter, op string, err error) {
	c.log.Warn(
		ErrBadRequest.Error(),
		slog.String("operation", op),
		slog.String("error", err.Error()))
	c.respond(w, http.StatusBadRequest, ErrorResponse{Error: ErrBadRequest.Error()})
}

func (c *GameController) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.log.Error(ErrEncoding.Error(), slog.String("error", err.Error()))
	}
}

// readBody returns the request body with surrounding whitespace removed.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(body), nil
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
