// AngelaMos | 2026
// handler.go

package calculation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/calcledger/internal/core"
	"github.com/carterperez-dev/calcledger/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/calculations", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{calculationID}", h.Get)
		r.Delete("/{calculationID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	calcType, err := ParseType(req.Type)
	if err != nil {
		core.Unprocessable(w, "Unsupported calculation type: "+req.Type)
		return
	}

	inputs, err := ParseInputs(req.Inputs)
	if err != nil {
		core.BadRequest(w, "Inputs must be a list of numbers")
		return
	}

	calc, err := h.service.Create(r.Context(), userID, calcType, inputs)
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	core.Created(w, ToCalculationResponse(calc))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}

	calcs, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToCalculationResponseList(calcs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	calcID := chi.URLParam(r, "calculationID")

	calc, err := h.service.Get(r.Context(), calcID, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "calculation")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCalculationResponse(calc))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	calcID := chi.URLParam(r, "calculationID")

	if err := h.service.Delete(r.Context(), calcID, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "calculation")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// writeCalculationError maps engine failures onto client responses with
// the exact messages the API contract promises.
func writeCalculationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		core.Unprocessable(w, "Unsupported calculation type")
	case errors.Is(err, ErrNotNumberList):
		core.BadRequest(w, "Inputs must be a list of numbers")
	case errors.Is(err, ErrTooFewInputs):
		core.BadRequest(w, "Inputs must be a list with at least two numbers")
	case errors.Is(err, ErrDivisionByZero):
		core.BadRequest(w, "Cannot divide by zero")
	case errors.Is(err, ErrModulusByZero):
		core.BadRequest(w, "Cannot perform modulus by zero")
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
