package tools

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	inchToMeter = 0.0254
	poundToKg   = 0.45359237

	UnitMetric   = "metric"
	UnitImperial = "imperial"
)

var (
	ErrInvalidMeasurements = errors.New("height and weight must be positive numbers")
	ErrInvalidBMRInput     = errors.New("invalid sex, age, height or weight")
	ErrInvalidAge          = errors.New("age must be a positive number")
	ErrInvalidCalories     = errors.New("calories must be a positive number")
	ErrInvalidWeight       = errors.New("weight must be a positive number")
)

var activityFactors = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"active":    1.725,
	"very":      1.9,
}

// extra ml of water per day
var (
	waterActivityML = map[string]float64{
		"sedentary": 0,
		"light":     300,
		"moderate":  700,
		"active":    1200,
		"very":      1800,
	}
	waterClimateML = map[string]float64{
		"temperate": 0,
		"warm":      400,
		"hot":       900,
	}
)

type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMI takes meters and kilograms, or inches and pounds for the imperial unit.
func BMI(height, weight float64, unit string) (BMIResult, error) {
	if !positive(height) || !positive(weight) {
		return BMIResult{}, ErrInvalidMeasurements
	}
	if strings.ToLower(unit) == UnitImperial {
		height *= inchToMeter
		weight *= poundToKg
	}

	bmi := weight / (height * height)
	category := "Obese"
	switch {
	case bmi < 18.5:
		category = "Underweight"
	case bmi < 25:
		category = "Normal"
	case bmi < 30:
		category = "Overweight"
	}
	return BMIResult{BMI: roundTo(bmi, 2), Category: category}, nil
}

type BMRResult struct {
	BMR      int    `json:"bmr"`
	TDEE     int    `json:"tdee"`
	Activity string `json:"activity"`
}

// BMR uses the Mifflin-St Jeor equation, height in cm and weight in kg.
// Unknown activity levels count as moderate.
func BMR(sex string, age int, heightCm, weightKg float64, activity string) (BMRResult, error) {
	sex = strings.ToLower(sex)
	if (sex != "male" && sex != "female") || age <= 0 || !positive(heightCm) || !positive(weightKg) {
		return BMRResult{}, ErrInvalidBMRInput
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	activity = strings.ToLower(activity)
	factor, ok := activityFactors[activity]
	if !ok {
		activity = "moderate"
		factor = activityFactors[activity]
	}

	return BMRResult{
		BMR:      int(math.Round(bmr)),
		TDEE:     int(math.Round(bmr * factor)),
		Activity: activity,
	}, nil
}

type Zone struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

type HeartRateResult struct {
	Max   int    `json:"max"`
	Zones []Zone `json:"zones"`
}

func HeartRateZones(age int) (HeartRateResult, error) {
	if age <= 0 {
		return HeartRateResult{}, ErrInvalidAge
	}

	maxHR := float64(220 - age)
	zones := make([]Zone, 0, 5)
	for i := 0; i < 5; i++ {
		low, high := 50+10*i, 60+10*i
		zones = append(zones, Zone{
			Name: fmt.Sprintf("Zone %d (%d-%d%%)", i+1, low, high),
			Min:  int(math.Round(maxHR * float64(low) / 100)),
			Max:  int(math.Round(maxHR * float64(high) / 100)),
		})
	}
	return HeartRateResult{Max: 220 - age, Zones: zones}, nil
}

type MacrosResult struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// Macros splits the daily target 30/40/30 into protein, carbs and fat grams.
// A cut removes 15 %, a bulk adds 15 %, any other goal maintains.
func Macros(calories int, goal string) (MacrosResult, error) {
	if calories <= 0 {
		return MacrosResult{}, ErrInvalidCalories
	}

	adjustment := 0.0
	switch strings.ToLower(goal) {
	case "cut":
		adjustment = -0.15
	case "bulk":
		adjustment = 0.15
	}

	target := math.Round(float64(calories) * (1 + adjustment))
	proteinCals := math.Round(target * 0.30)
	carbsCals := math.Round(target * 0.40)
	fatCals := math.Round(target * 0.30)
	return MacrosResult{
		Calories: int(target),
		ProteinG: int(math.Round(proteinCals / 4)),
		CarbsG:   int(math.Round(carbsCals / 4)),
		FatG:     int(math.Round(fatCals / 9)),
	}, nil
}

type WaterResult struct {
	ML     int     `json:"ml"`
	Liters float64 `json:"liters"`
	Cups   float64 `json:"cups"`
}

// Water is the daily intake: 35 ml per kg plus activity and climate extras, within [1500, 6000] ml.
func Water(weight float64, unit, activity, climate string) (WaterResult, error) {
	if !positive(weight) {
		return WaterResult{}, ErrInvalidWeight
	}
	if strings.ToLower(unit) == UnitImperial {
		weight *= poundToKg
	}

	ml := weight * 35
	if extra, ok := waterActivityML[strings.ToLower(activity)]; ok {
		ml += extra
	} else {
		ml += waterActivityML["moderate"]
	}
	ml += waterClimateML[strings.ToLower(climate)]

	total := min(6000, max(1500, int(math.Round(ml))))
	return WaterResult{
		ML:     total,
		Liters: roundTo(float64(total)/1000, 2),
		Cups:   roundTo(float64(total)/240, 1),
	}, nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func roundTo(f float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(f*p) / p
}
