package tools

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/nutrition"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxNutritionQueryLen = 100

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=tools_test
type nutritionLookup interface {
	Lookup(ctx context.Context, query string) ([]nutrition.Item, error)
}

type auditLogger interface {
	Log(r *http.Request, action string, details audit.Details)
}

type Handler struct {
	nutrition nutritionLookup
	audit     auditLogger
}

func NewHandler(nutritionLookup nutritionLookup, auditLogger auditLogger) *Handler {
	return &Handler{
		nutrition: nutritionLookup,
		audit:     auditLogger,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	toolsRouter := mainRouter.PathPrefix("/tools").Subrouter()
	toolsRouter.HandleFunc("", handler.handleList).Methods("GET").Name("tools")
	toolsRouter.HandleFunc("/bmi", handler.handleBMI).Methods("POST").Name("tools-bmi")
	toolsRouter.HandleFunc("/bmr", handler.handleBMR).Methods("POST").Name("tools-bmr")
	toolsRouter.HandleFunc("/hr", handler.handleHeartRate).Methods("POST").Name("tools-hr")
	toolsRouter.HandleFunc("/macros", handler.handleMacros).Methods("POST").Name("tools-macros")
	toolsRouter.HandleFunc("/water", handler.handleWater).Methods("POST").Name("tools-water")
	toolsRouter.HandleFunc("/nutrition", handler.handleNutrition).Methods("POST").Name("tools-nutrition")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	handler.audit.Log(r, "view_tools", nil)
	pkg.WriteJSON(w, map[string][]string{
		"tools": {"bmi", "bmr", "hr", "macros", "water", "nutrition", "period"},
	}, http.StatusOK)
}

func (handler *Handler) handleBMI(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.tools.bmi")
	defer span.End()

	get, ok := handler.readValues(w, r)
	if !ok {
		return
	}

	heightStr := pkg.SanitizeText(get("height"), 10)
	weightStr := pkg.SanitizeText(get("weight"), 10)
	unit := strings.ToLower(pkg.SanitizeText(get("unit"), 10))
	if unit == "" {
		unit = UnitMetric
	}

	result, err := BMI(parseFloat(heightStr), parseFloat(weightStr), unit)
	if err != nil {
		handler.audit.Log(r, "bmi_calc_failed", audit.Details{"height": heightStr, "weight": weightStr})
		msg := "Please enter valid positive numbers for height (m) and weight (kg)."
		if unit == UnitImperial {
			msg = "Please enter valid positive numbers for height (in) and weight (lb)."
		}
		pkg.WriteJSONError(w, msg, http.StatusBadRequest)
		return
	}

	handler.audit.Log(r, "bmi_calc_success", audit.Details{"bmi": result.BMI, "category": result.Category})
	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) handleBMR(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.tools.bmr")
	defer span.End()

	get, ok := handler.readValues(w, r)
	if !ok {
		return
	}

	sex := pkg.SanitizeText(get("sex"), 10)
	if sex == "" {
		sex = "male"
	}
	activity := pkg.SanitizeText(get("activity"), 20)
	result, err := BMR(sex, parseInt(get("age")), parseFloat(get("height")), parseFloat(get("weight")), activity)
	if err != nil {
		handler.audit.Log(r, "bmr_failed", nil)
		pkg.WriteJSONError(w, "Please enter valid values.", http.StatusBadRequest)
		return
	}

	handler.audit.Log(r, "bmr_success", audit.Details{"bmr": result.BMR, "tdee": result.TDEE, "activity": result.Activity})
	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) handleHeartRate(w http.ResponseWriter, r *http.Request) {
	get, ok := handler.readValues(w, r)
	if !ok {
		return
	}

	result, err := HeartRateZones(parseInt(get("age")))
	if err != nil {
		handler.audit.Log(r, "hr_failed", nil)
		pkg.WriteJSONError(w, "Please enter a valid age.", http.StatusBadRequest)
		return
	}

	handler.audit.Log(r, "hr_success", audit.Details{"max": result.Max})
	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) handleMacros(w http.ResponseWriter, r *http.Request) {
	get, ok := handler.readValues(w, r)
	if !ok {
		return
	}

	result, err := Macros(parseInt(get("calories")), get("goal"))
	if err != nil {
		handler.audit.Log(r, "macros_failed", nil)
		pkg.WriteJSONError(w, "Enter valid daily calories.", http.StatusBadRequest)
		return
	}

	handler.audit.Log(r, "macros_success", audit.Details{
		"calories":  result.Calories,
		"protein_g": result.ProteinG,
		"carbs_g":   result.CarbsG,
		"fat_g":     result.FatG,
	})
	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) handleWater(w http.ResponseWriter, r *http.Request) {
	get, ok := handler.readValues(w, r)
	if !ok {
		return
	}

	unit := valueOr(get("unit"), UnitMetric)
	activity := valueOr(get("activity"), "moderate")
	climate := valueOr(get("climate"), "temperate")
	weight := parseFloat(get("weight"))

	result, err := Water(weight, unit, activity, climate)
	if err != nil {
		handler.audit.Log(r, "water_failed", nil)
		pkg.WriteJSONError(w, "Enter a valid weight.", http.StatusBadRequest)
		return
	}

	handler.audit.Log(r, "water_success", audit.Details{
		"unit":     unit,
		"weight":   weight,
		"activity": activity,
		"climate":  climate,
		"ml":       result.ML,
	})
	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) handleNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tools.nutrition")
	defer span.End()

	get, ok := handler.readValues(w, r)
	if !ok {
		return
	}

	q := pkg.SanitizeText(get("q"), maxNutritionQueryLen)
	if q == "" {
		handler.audit.Log(r, "nutrition_failed", audit.Details{"reason": "empty"})
		pkg.WriteJSONError(w, `Enter a food name, e.g., "apple"`, http.StatusBadRequest)
		return
	}

	items, err := handler.nutrition.Lookup(ctx, q)
	if err != nil {
		log.Errorf("nutrition lookup [%s]: %s", q, err)
		handler.audit.Log(r, "nutrition_error", audit.Details{"error": err.Error()})
		pkg.WriteJSONError(w, "Failed to fetch nutrition data.", http.StatusInternalServerError)
		return
	}

	handler.audit.Log(r, "nutrition_success", audit.Details{"q": q, "count": len(items)})
	pkg.WriteJSON(w, map[string]any{"q": q, "items": items}, http.StatusOK)
}

func (handler *Handler) readValues(w http.ResponseWriter, r *http.Request) (func(string) string, bool) {
	get, err := pkg.RequestValues(r)
	if err != nil {
		log.Debugf("%s, read request values: %s", r.URL.Path, err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return get, true
}

// parseFloat returns 0, an invalid measurement for every calculator, when s is not a number.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

func valueOr(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
