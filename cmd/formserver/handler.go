package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

const maxBodyBytes = 64 << 10

// secretFields are validated but never echoed back.
var secretFields = []string{"password"}

type signupHandler struct {
	log     *slog.Logger
	tr      *i18n.Translator
	formCfg form.Config
	taken   *rules.TakenSet
}

type validateResponse struct {
	Errors map[string]form.ValidationResult `json:"errors"`
	Values map[string]any                   `json:"values"`
}

type fieldResponse struct {
	Field  string                `json:"field"`
	Result form.ValidationResult `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newRouter(h *signupHandler, checks ...httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthHandler(h.log, checks...))
	r.Route("/signup", func(r chi.Router) {
		r.Post("/validate", h.validate)
		r.Post("/fields/{name}/validate", h.validateField)
	})
	return r
}

// newForm builds a fresh registry for one request, localized from Accept-Language.
func (h *signupHandler) newForm(r *http.Request) (*form.Registry, map[string]form.Binder) {
	lang := h.tr.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
	reg := form.New(
		form.WithConfig(h.formCfg),
		form.WithTranslator(h.tr),
		form.WithLanguage(lang),
		form.WithLogger(h.log),
		form.WithID(middleware.GetReqID(r.Context())),
	)
	return reg, signupForm(reg, h.tr, lang, h.taken)
}

// validate runs the whole signup form against the posted values.
// It answers 422 with the failing fields, or 200 when the form is valid.
func (h *signupHandler) validate(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if !decodeBody(w, r, &input) {
		return
	}

	reg, _ := h.newForm(r)
	for name, value := range input {
		if errors.Is(reg.SetValue(name, value), form.ErrFieldNotFound) {
			h.log.DebugContext(r.Context(), "ignoring unknown signup field", logger.Field(name))
		}
	}

	report, err := reg.ValidateFields(r.Context(), nil)
	if err != nil {
		h.log.WarnContext(r.Context(), "signup validation aborted", logger.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "validation did not complete"})
		return
	}

	for _, name := range secretFields {
		delete(report.Values, name)
	}
	status := http.StatusOK
	if report.Errors != nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, validateResponse{Errors: report.Errors, Values: report.Values})
}

// validateField checks one field the way leaving it in the browser would.
// Other posted values are available to its rules.
func (h *signupHandler) validateField(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var input map[string]any
	if !decodeBody(w, r, &input) {
		return
	}

	reg, binders := h.newForm(r)
	bind, ok := binders[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: form.ErrFieldNotFound.Error()})
		return
	}
	for field, value := range input {
		_ = reg.SetValue(field, value)
	}

	b := bind(nil)
	defer b.Unmount()

	res, err := b.Controller().TriggerValidate(r.Context(), nil, nil).Await(r.Context())
	if err != nil {
		h.log.WarnContext(r.Context(), "field validation aborted", logger.Field(name), logger.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "validation did not complete"})
		return
	}

	status := http.StatusOK
	if res.Error {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, fieldResponse{Field: name, Result: res})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
