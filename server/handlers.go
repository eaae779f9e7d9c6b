package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"evroute/cache"
	"evroute/geo"
	"evroute/geocode"
	"evroute/internal"
	"evroute/internal/config"
	"evroute/metrics/counters"
	"evroute/ocm"
	"evroute/osrm"
	"evroute/planner"
	"evroute/route"
	"evroute/station"
	"evroute/utility"
)

// Collaborator contracts. The concrete clients live in their own packages;
// handlers only see these, so tests inject fakes.

type StationProvider interface {
	Search(ctx context.Context, center geo.Point, radiusKm float64, maxResults int) ([]ocm.POI, error)
	SearchCity(ctx context.Context, city string, maxResults int) ([]ocm.POI, error)
}

type RouteProvider interface {
	GetRoute(ctx context.Context, origin, destination geo.Point) (*osrm.Route, error)
}

type Geocoder interface {
	Resolve(ctx context.Context, place string) (geo.Point, error)
}

type Chat interface {
	Reply(ctx context.Context, message string) (string, bool)
}

type Handler struct {
	conf     *config.Config
	logger   internal.LogHandler
	cache    cache.ResponseCache
	stations StationProvider
	router   RouteProvider
	geocoder Geocoder
	chat     Chat
	planner  *planner.Planner
}

func NewHandler(conf *config.Config, responseCache cache.ResponseCache, stations StationProvider, router RouteProvider, geocoder Geocoder, chat Chat, tripPlanner *planner.Planner) *Handler {
	return &Handler{
		conf:     conf,
		cache:    responseCache,
		stations: stations,
		router:   router,
		geocoder: geocoder,
		chat:     chat,
		planner:  tripPlanner,
	}
}

func (h *Handler) SetLogger(logger internal.LogHandler) {
	h.logger = logger
}

type apiError struct {
	Error string `json:"error"`
}

func (h *Handler) respond(w http.ResponseWriter, endpoint string, status int, body interface{}) {
	counters.CountRequest(endpoint, strconv.Itoa(status))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil && h.logger != nil {
			h.logger.Error("encoding response", err)
		}
	}
}

func (h *Handler) fail(w http.ResponseWriter, endpoint string, status int, message string) {
	h.respond(w, endpoint, status, apiError{Error: message})
}

// StationsNearby is the point search: stations around a coordinate, filtered
// and ordered by ascending distance.
func (h *Handler) StationsNearby(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestId := utility.NewUUID()
	q := r.URL.Query()

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" || lonStr == "" {
		h.fail(w, stationsEndpoint, http.StatusBadRequest, "lat & lon are required")
		return
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		h.fail(w, stationsEndpoint, http.StatusBadRequest, "lat/lon must be numbers")
		return
	}

	radiusKm := utility.ClampFloat(utility.ToFloat(q.Get("distance"), 10), 1, 50)
	maxResults := utility.Clamp(utility.ToInt(q.Get("maxresults"), 150), 1, 300)

	var minKW, maxKW *float64
	for param, target := range map[string]**float64{"min_kw": &minKW, "max_kw": &maxKW} {
		if raw := q.Get(param); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				h.fail(w, stationsEndpoint, http.StatusBadRequest, "invalid number in filters")
				return
			}
			*target = &v
		}
	}

	center := geo.Point{Lat: lat, Lon: lon}
	records, err := h.cachedSearch(r.Context(), requestId, center, radiusKm, maxResults)
	if err != nil {
		h.logger.Error("station search failed", err)
		h.fail(w, stationsEndpoint, http.StatusBadGateway, "station search failed")
		return
	}

	stations := make([]station.Station, 0, len(records))
	for _, raw := range records {
		stations = append(stations, station.Normalize(raw))
	}
	stations = station.Filter(stations,
		station.MatchText(q.Get("q")),
		station.MatchConnectors(utility.SplitCSV(q.Get("connectors"))),
		station.MatchPower(minKW, maxKW),
		station.MatchStatus(q.Get("status")),
	)
	stations = station.SortByDistance(stations)

	h.logger.FeatureEvent("StationSearch", requestId, fmt.Sprintf("%d stations around %.4f,%.4f", len(stations), lat, lon))
	h.respond(w, stationsEndpoint, http.StatusOK, stations)
}

// cachedSearch returns the raw upstream payload for a point search, serving
// repeats from the response cache inside the TTL window.
func (h *Handler) cachedSearch(ctx context.Context, requestId string, center geo.Point, radiusKm float64, maxResults int) ([]ocm.POI, error) {
	key := cache.Key("ocm_upstream", map[string]interface{}{
		"lat":        center.Lat,
		"lon":        center.Lon,
		"distance":   radiusKm,
		"maxresults": maxResults,
	})
	if cached, ok := h.cache.Get(key); ok {
		counters.CountCacheLookup("ocm_upstream", true)
		return cached.([]ocm.POI), nil
	}
	counters.CountCacheLookup("ocm_upstream", false)

	records, err := h.stations.Search(ctx, center, radiusKm, maxResults)
	counters.CountUpstreamCall("ocm", err != nil)
	if err != nil {
		return nil, err
	}
	h.cache.Set(key, records, time.Duration(h.conf.Cache.UpstreamTTL)*time.Second)
	h.logger.FeatureEvent("StationSearch", requestId, fmt.Sprintf("upstream returned %d records", len(records)))
	return records, nil
}

// StationsByCity is the simple city-name lookup, resolved by the upstream's
// own address matching.
func (h *Handler) StationsByCity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestId := utility.NewUUID()
	city := r.URL.Query().Get("city")
	maxResults := utility.Clamp(utility.ToInt(r.URL.Query().Get("maxresults"), 20), 1, 100)

	records, err := h.stations.SearchCity(r.Context(), city, maxResults)
	counters.CountUpstreamCall("ocm", err != nil)
	if err != nil {
		h.logger.Error("city station lookup failed", err)
		h.fail(w, cityStationsEndpoint, http.StatusBadGateway, "station search failed")
		return
	}
	stations := make([]station.Station, 0, len(records))
	for _, raw := range records {
		stations = append(stations, station.Normalize(raw))
	}
	h.logger.FeatureEvent("CityStations", requestId, fmt.Sprintf("%d stations for city %q", len(stations), city))
	h.respond(w, cityStationsEndpoint, http.StatusOK, stations)
}

type routeSummary struct {
	DistanceKm   float64 `json:"distance_km"`
	DurationMin  float64 `json:"duration_min"`
	SamplePoints int     `json:"sample_points"`
}

type routeChargersResponse struct {
	Route    routeSummary      `json:"route"`
	Stations []station.Station `json:"stations"`
}

// RouteChargers finds and ranks charging stations along the driving route
// between two coordinates.
func (h *Handler) RouteChargers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestId := utility.NewUUID()
	q := r.URL.Query()

	var coords [4]float64
	for i, param := range []string{"origin_lat", "origin_lon", "dest_lat", "dest_lon"} {
		raw := q.Get(param)
		if raw == "" {
			h.fail(w, routeChargersEndpoint, http.StatusBadRequest, param+" is required")
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.fail(w, routeChargersEndpoint, http.StatusBadRequest, param+" must be a number")
			return
		}
		coords[i] = v
	}
	origin := geo.Point{Lat: coords[0], Lon: coords[1]}
	destination := geo.Point{Lat: coords[2], Lon: coords[3]}

	resp, status, errMsg := h.chargersAlong(r.Context(), requestId, origin, destination)
	if errMsg != "" {
		h.fail(w, routeChargersEndpoint, status, errMsg)
		return
	}
	h.respond(w, routeChargersEndpoint, http.StatusOK, resp)
}

// chargersAlong runs the route search pipeline: route, samples, aggregation,
// score ranking. Shared by the route-chargers and plan-trip endpoints;
// finished responses are cached per coordinate pair.
func (h *Handler) chargersAlong(ctx context.Context, requestId string, origin, destination geo.Point) (*routeChargersResponse, int, string) {
	key := cache.Key("route_chargers", map[string]interface{}{
		"origin_lat": origin.Lat,
		"origin_lon": origin.Lon,
		"dest_lat":   destination.Lat,
		"dest_lon":   destination.Lon,
	})
	if cached, ok := h.cache.Get(key); ok {
		counters.CountCacheLookup("route_chargers", true)
		return cached.(*routeChargersResponse), 0, ""
	}
	counters.CountCacheLookup("route_chargers", false)

	drivingRoute, err := h.router.GetRoute(ctx, origin, destination)
	counters.CountUpstreamCall("osrm", err != nil)
	if err != nil {
		if errors.Is(err, osrm.ErrNoRoute) {
			return nil, http.StatusNotFound, "no route found"
		}
		h.logger.Error("route lookup failed", err)
		return nil, http.StatusBadGateway, "route lookup failed"
	}

	samples, err := route.Sample(drivingRoute.Points, h.conf.Search.SampleIntervalKm)
	if err != nil {
		// Means the configured interval is broken, not the request.
		h.logger.Error("route sampling failed", err)
		return nil, http.StatusInternalServerError, "route sampling failed"
	}

	search := func(ctx context.Context, center geo.Point, radiusKm float64, maxResults int) ([]ocm.POI, error) {
		records, err := h.stations.Search(ctx, center, radiusKm, maxResults)
		counters.CountUpstreamCall("ocm", err != nil)
		return records, err
	}
	merged := station.Aggregate(ctx, samples, h.conf.Search.RadiusKm, h.conf.Search.MaxPerSample, search)
	counters.ObserveMergedStations(routeChargersEndpoint, len(merged))

	stations := make([]station.Station, 0, len(merged))
	for _, s := range merged {
		stations = append(stations, s)
	}
	ranked := station.RankByScore(stations)

	h.logger.FeatureEvent("RouteChargers", requestId,
		fmt.Sprintf("%d stations over %d samples, route %.1f km", len(ranked), len(samples), drivingRoute.DistanceKm))

	resp := &routeChargersResponse{
		Route: routeSummary{
			DistanceKm:   drivingRoute.DistanceKm,
			DurationMin:  drivingRoute.DurationMin,
			SamplePoints: len(samples),
		},
		Stations: ranked,
	}
	h.cache.Set(key, resp, time.Duration(h.conf.Cache.ResponseTTL)*time.Second)
	return resp, 0, ""
}

type planTripRequest struct {
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	OriginPoint       *geo.Point `json:"origin_point"`
	DestinationPoint  *geo.Point `json:"destination_point"`
	VehicleRangeKm    float64    `json:"vehicle_range_km"`
	CurrentBatteryPct float64    `json:"current_battery_pct"`
}

type planTripResponse struct {
	Route      routeSummary       `json:"route"`
	Stops      []planner.Stop     `json:"charging_stops"`
	Comparison planner.Comparison `json:"comparison"`
	Stations   []station.Station  `json:"stations"`
}

// maximum stations returned with a trip plan
const tripStationLimit = 10

// PlanTrip resolves the trip endpoints, plans charging stops over the route
// distance and attaches the best stations along the way.
func (h *Handler) PlanTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestId := utility.NewUUID()

	var req planTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, planTripEndpoint, http.StatusBadRequest, "invalid request body")
		return
	}

	origin, status, errMsg := h.resolveEndpoint(r.Context(), req.OriginPoint, req.Origin, "origin")
	if errMsg != "" {
		h.fail(w, planTripEndpoint, status, errMsg)
		return
	}
	destination, status, errMsg := h.resolveEndpoint(r.Context(), req.DestinationPoint, req.Destination, "destination")
	if errMsg != "" {
		h.fail(w, planTripEndpoint, status, errMsg)
		return
	}

	chargers, status, errMsg := h.chargersAlong(r.Context(), requestId, origin, destination)
	if errMsg != "" {
		h.fail(w, planTripEndpoint, status, errMsg)
		return
	}

	stops, err := h.planner.Plan(chargers.Route.DistanceKm, req.VehicleRangeKm, req.CurrentBatteryPct)
	if err != nil {
		h.fail(w, planTripEndpoint, http.StatusBadRequest, err.Error())
		return
	}

	stations := chargers.Stations
	if len(stations) > tripStationLimit {
		stations = stations[:tripStationLimit]
	}

	h.logger.FeatureEvent("PlanTrip", requestId,
		fmt.Sprintf("%.1f km, %d charging stops", chargers.Route.DistanceKm, len(stops)))
	h.respond(w, planTripEndpoint, http.StatusOK, planTripResponse{
		Route:      chargers.Route,
		Stops:      stops,
		Comparison: h.planner.Compare(chargers.Route.DistanceKm),
		Stations:   stations,
	})
}

// resolveEndpoint takes explicit coordinates when given, otherwise geocodes
// the place name.
func (h *Handler) resolveEndpoint(ctx context.Context, point *geo.Point, place, role string) (geo.Point, int, string) {
	if point != nil {
		return *point, 0, ""
	}
	if place == "" {
		return geo.Point{}, http.StatusBadRequest, role + " is required"
	}
	resolved, err := h.geocoder.Resolve(ctx, place)
	counters.CountUpstreamCall("geocoder", err != nil)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			return geo.Point{}, http.StatusNotFound, "could not locate " + role
		}
		h.logger.Error("geocoding failed", err)
		return geo.Point{}, http.StatusBadGateway, "geocoding failed"
	}
	return resolved, 0, ""
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatReply struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

// Chatbot proxies a free-text question to the assistant.
func (h *Handler) Chatbot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		h.fail(w, chatbotEndpoint, http.StatusBadRequest, "message is required")
		return
	}
	reply, fallback := h.chat.Reply(r.Context(), req.Message)
	if fallback {
		counters.CountAssistantFallback()
	}
	h.respond(w, chatbotEndpoint, http.StatusOK, chatReply{Reply: reply, Fallback: fallback})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	h.respond(w, healthEndpoint, http.StatusOK, map[string]string{"status": "ok"})
}
