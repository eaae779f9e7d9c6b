package planner

import (
	"math"

	"evroute/utility"
)

// ErrInvalidRange is returned for a non-positive vehicle range.
var ErrInvalidRange = utility.Err("vehicle range must be positive")

// The stop model is deliberately uniform: every stop recharges from a
// nominal 20% to 80% and takes a fixed time, regardless of the charger
// actually found near the computed position. Cost per stop is derived from
// the configured pack capacity and tariff band.
const (
	arriveChargePct = 20
	departChargePct = 80
	usableFraction  = (departChargePct - arriveChargePct) / 100.0
)

// Config carries the fixed planning constants.
type Config struct {
	ChargeMinutes    int     `yaml:"charge_minutes" env-default:"35"`
	BatteryKWh       float64 `yaml:"battery_kwh" env-default:"60"`
	PriceMinPerKWh   float64 `yaml:"price_min_kwh" env-default:"12"`
	PriceMaxPerKWh   float64 `yaml:"price_max_kwh" env-default:"20"`
	PetrolPerLitre   float64 `yaml:"petrol_per_litre" env-default:"105"`
	PetrolKmPerLitre float64 `yaml:"petrol_km_per_litre" env-default:"15"`
	CO2KgPerLitre    float64 `yaml:"co2_kg_per_litre" env-default:"2.3"`
	EVKWhPerKm       float64 `yaml:"ev_kwh_per_km" env-default:"0.15"`
}

// Stop is one planned recharging event.
type Stop struct {
	Number           int     `json:"stop_number"`
	DistanceKm       float64 `json:"distance_from_start_km"`
	RemainingKm      float64 `json:"remaining_distance_km"`
	ChargeMinutes    int     `json:"estimated_charge_minutes"`
	BatteryBeforePct int     `json:"battery_before_pct"`
	BatteryAfterPct  int     `json:"battery_after_pct"`
	CostMin          float64 `json:"estimated_cost_min"`
	CostMax          float64 `json:"estimated_cost_max"`
}

// Planner computes charging stops and trip economics from fixed constants.
type Planner struct {
	conf Config
}

func New(conf Config) *Planner {
	return &Planner{conf: conf}
}

// Plan places charging stops over the trip distance. The first leg runs on
// the starting charge; each stop then adds 60% of the nominal range. Stops
// landing at or past the destination are not emitted. The battery percentage
// is taken as given, out-of-range values propagate numerically so caller
// validation bugs stay visible.
func (p *Planner) Plan(totalDistanceKm, vehicleRangeKm, currentBatteryPct float64) ([]Stop, error) {
	if vehicleRangeKm <= 0 {
		return nil, ErrInvalidRange
	}
	currentRangeKm := currentBatteryPct / 100 * vehicleRangeKm
	if totalDistanceKm <= currentRangeKm {
		return nil, nil
	}

	perStopKm := usableFraction * vehicleRangeKm
	stopsNeeded := int(math.Ceil((totalDistanceKm - currentRangeKm) / perStopKm))

	energyKWh := usableFraction * p.conf.BatteryKWh
	stops := make([]Stop, 0, stopsNeeded)
	for i := 1; i <= stopsNeeded; i++ {
		at := currentRangeKm + float64(i-1)*perStopKm
		if at >= totalDistanceKm {
			break
		}
		stops = append(stops, Stop{
			Number:           i,
			DistanceKm:       round1(at),
			RemainingKm:      round1(totalDistanceKm - at),
			ChargeMinutes:    p.conf.ChargeMinutes,
			BatteryBeforePct: arriveChargePct,
			BatteryAfterPct:  departChargePct,
			CostMin:          round1(energyKWh * p.conf.PriceMinPerKWh),
			CostMax:          round1(energyKWh * p.conf.PriceMaxPerKWh),
		})
	}
	return stops, nil
}

// Comparison sets the trip's EV energy cost band against a petrol baseline.
type Comparison struct {
	EVCostMin      float64 `json:"ev_cost_min"`
	EVCostMax      float64 `json:"ev_cost_max"`
	PetrolCost     float64 `json:"petrol_cost"`
	SavingsMin     float64 `json:"savings_min"`
	SavingsMax     float64 `json:"savings_max"`
	CO2SavedKg     float64 `json:"co2_saved_kg"`
	EnergyUsedKWh  float64 `json:"energy_used_kwh"`
	PetrolUsedLtrs float64 `json:"petrol_used_litres"`
}

// Compare estimates trip cost and emissions for the EV against an equivalent
// petrol car over the same distance.
func (p *Planner) Compare(totalDistanceKm float64) Comparison {
	energy := totalDistanceKm * p.conf.EVKWhPerKm
	litres := totalDistanceKm / p.conf.PetrolKmPerLitre
	petrolCost := litres * p.conf.PetrolPerLitre
	evMin := energy * p.conf.PriceMinPerKWh
	evMax := energy * p.conf.PriceMaxPerKWh
	return Comparison{
		EVCostMin:      round1(evMin),
		EVCostMax:      round1(evMax),
		PetrolCost:     round1(petrolCost),
		SavingsMin:     round1(petrolCost - evMax),
		SavingsMax:     round1(petrolCost - evMin),
		CO2SavedKg:     round1(litres * p.conf.CO2KgPerLitre),
		EnergyUsedKWh:  round1(energy),
		PetrolUsedLtrs: round1(litres),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
