package costing

// Pointer fields distinguish "not set" from an explicit zero; unset fields
// are omitted from the request so the engine applies its own defaults.

// AutoOptions tunes the automobile cost model. Bus and taxi requests use
// the same parameter set.
type AutoOptions struct {
	ManeuverPenalty                float64  `json:"maneuver_penalty,omitempty"`
	GateCost                       float64  `json:"gate_cost,omitempty"`
	GatePenalty                    float64  `json:"gate_penalty,omitempty"`
	PrivateAccessPenalty           float64  `json:"private_access_penalty,omitempty"`
	DestinationOnlyPenalty         float64  `json:"destination_only_penalty,omitempty"`
	TollBoothCost                  float64  `json:"toll_booth_cost,omitempty"`
	TollBoothPenalty               float64  `json:"toll_booth_penalty,omitempty"`
	FerryCost                      float64  `json:"ferry_cost,omitempty"`
	UseFerry                       *float64 `json:"use_ferry,omitempty"`
	UseHighways                    *float64 `json:"use_highways,omitempty"`
	UseTolls                       *float64 `json:"use_tolls,omitempty"`
	UseLivingStreets               *float64 `json:"use_living_streets,omitempty"`
	UseTracks                      *float64 `json:"use_tracks,omitempty"`
	ServicePenalty                 float64  `json:"service_penalty,omitempty"`
	ServiceFactor                  float64  `json:"service_factor,omitempty"`
	CountryCrossingCost            float64  `json:"country_crossing_cost,omitempty"`
	CountryCrossingPenalty         float64  `json:"country_crossing_penalty,omitempty"`
	Shortest                       bool     `json:"shortest,omitempty"`
	UseDistance                    *float64 `json:"use_distance,omitempty"`
	DisableHierarchyPruning        bool     `json:"disable_hierarchy_pruning,omitempty"`
	TopSpeed                       float64  `json:"top_speed,omitempty"`
	FixedSpeed                     int      `json:"fixed_speed,omitempty"`
	ClosureFactor                  float64  `json:"closure_factor,omitempty"`
	IgnoreClosures                 bool     `json:"ignore_closures,omitempty"`
	IgnoreRestrictions             bool     `json:"ignore_restrictions,omitempty"`
	IgnoreOneways                  bool     `json:"ignore_oneways,omitempty"`
	IgnoreNonVehicularRestrictions bool     `json:"ignore_non_vehicular_restrictions,omitempty"`
	IgnoreAccess                   bool     `json:"ignore_access,omitempty"`
	SpeedTypes                     []string `json:"speed_types,omitempty"`
	Height                         float64  `json:"height,omitempty"`
	Width                          float64  `json:"width,omitempty"`
	ExcludeUnpaved                 bool     `json:"exclude_unpaved,omitempty"`
	ExcludeCashOnlyTolls           bool     `json:"exclude_cash_only_tolls,omitempty"`
	IncludeHov2                    bool     `json:"include_hov2,omitempty"`
	IncludeHov3                    bool     `json:"include_hov3,omitempty"`
	IncludeHot                     bool     `json:"include_hot,omitempty"`
}

// BicycleType selects the bicycle profile the engine costs for.
type BicycleType string

const (
	BicycleRoad     BicycleType = "road"
	BicycleHybrid   BicycleType = "hybrid"
	BicycleCross    BicycleType = "cross"
	BicycleMountain BicycleType = "mountain"
)

// BicycleOptions tunes the bicycle cost model. Bikeshare requests use the
// same parameter set.
type BicycleOptions struct {
	BicycleType            BicycleType `json:"bicycle_type,omitempty"`
	CyclingSpeed           float64     `json:"cycling_speed,omitempty"`
	UseRoads               *float64    `json:"use_roads,omitempty"`
	UseHills               *float64    `json:"use_hills,omitempty"`
	UseFerry               *float64    `json:"use_ferry,omitempty"`
	UseLivingStreets       *float64    `json:"use_living_streets,omitempty"`
	AvoidBadSurfaces       *float64    `json:"avoid_bad_surfaces,omitempty"`
	BssReturnCost          float64     `json:"bss_return_cost,omitempty"`
	BssReturnPenalty       float64     `json:"bss_return_penalty,omitempty"`
	Shortest               bool        `json:"shortest,omitempty"`
	ManeuverPenalty        float64     `json:"maneuver_penalty,omitempty"`
	GateCost               float64     `json:"gate_cost,omitempty"`
	GatePenalty            float64     `json:"gate_penalty,omitempty"`
	CountryCrossingCost    float64     `json:"country_crossing_cost,omitempty"`
	CountryCrossingPenalty float64     `json:"country_crossing_penalty,omitempty"`
	ServicePenalty         float64     `json:"service_penalty,omitempty"`
}

// TruckOptions tunes the truck cost model: the auto parameters plus the
// vehicle-dimension and load restrictions trucks are subject to.
type TruckOptions struct {
	AutoOptions
	Length             float64 `json:"length,omitempty"`
	Weight             float64 `json:"weight,omitempty"`
	AxleLoad           float64 `json:"axle_load,omitempty"`
	AxleCount          int     `json:"axle_count,omitempty"`
	Hazmat             bool    `json:"hazmat,omitempty"`
	HgvNoAccessPenalty float64 `json:"hgv_no_access_penalty,omitempty"`
	LowClassPenalty    float64 `json:"low_class_penalty,omitempty"`
	UseTruckRoute      float64 `json:"use_truck_route,omitempty"`
}

// MotorScooterOptions tunes the motor scooter cost model: the auto
// parameters plus road-class and grade avoidance.
type MotorScooterOptions struct {
	AutoOptions
	UsePrimary *float64 `json:"use_primary,omitempty"`
	UseHills   *float64 `json:"use_hills,omitempty"`
}

// MotorcycleOptions tunes the motorcycle cost model: the auto parameters
// plus a road-touring vs. adventure-trail preference.
type MotorcycleOptions struct {
	AutoOptions
	UseTrails *float64 `json:"use_trails,omitempty"`
}

// PedestrianType selects the pedestrian profile the engine costs for.
type PedestrianType string

const (
	PedestrianFoot  PedestrianType = "foot"
	PedestrianBlind PedestrianType = "blind"
)

// PedestrianOptions tunes the walking cost model.
type PedestrianOptions struct {
	Type                       PedestrianType `json:"type,omitempty"`
	WalkingSpeed               float64        `json:"walking_speed,omitempty"`
	WalkwayFactor              float64        `json:"walkway_factor,omitempty"`
	SidewalkFactor             float64        `json:"sidewalk_factor,omitempty"`
	AlleyFactor                float64        `json:"alley_factor,omitempty"`
	DrivewayFactor             float64        `json:"driveway_factor,omitempty"`
	StepPenalty                float64        `json:"step_penalty,omitempty"`
	UseFerry                   *float64       `json:"use_ferry,omitempty"`
	UseLivingStreets           *float64       `json:"use_living_streets,omitempty"`
	UseTracks                  *float64       `json:"use_tracks,omitempty"`
	UseHills                   *float64       `json:"use_hills,omitempty"`
	UseLit                     *float64       `json:"use_lit,omitempty"`
	ServicePenalty             float64        `json:"service_penalty,omitempty"`
	ServiceFactor              float64        `json:"service_factor,omitempty"`
	DestinationOnlyPenalty     float64        `json:"destination_only_penalty,omitempty"`
	MaxHikingDifficulty        float64        `json:"max_hiking_difficulty,omitempty"`
	BssRentCost                float64        `json:"bss_rent_cost,omitempty"`
	BssRentPenalty             float64        `json:"bss_rent_penalty,omitempty"`
	Shortest                   bool           `json:"shortest,omitempty"`
	MaxDistance                float64        `json:"max_distance,omitempty"`
	TransitStartEndMaxDistance float64        `json:"transit_start_end_max_distance,omitempty"`
	TransitTransferMaxDistance float64        `json:"transit_transfer_max_distance,omitempty"`
	ModeFactor                 float64        `json:"mode_factor,omitempty"`
}

// TransitFilter narrows a multimodal request to or away from specific
// transit route, operator, or stop identifiers.
type TransitFilter struct {
	Ids    []string `json:"ids"`
	Action string   `json:"action"` // "include" or "exclude"
}

// TransitFilters groups the per-entity transit filters.
type TransitFilters struct {
	Routes    *TransitFilter `json:"routes,omitempty"`
	Operators *TransitFilter `json:"operators,omitempty"`
	Stops     *TransitFilter `json:"stops,omitempty"`
}

// TransitOptions tunes the transit leg of a multimodal request.
type TransitOptions struct {
	UseBus       *float64        `json:"use_bus,omitempty"`
	UseRail      *float64        `json:"use_rail,omitempty"`
	UseTransfers *float64        `json:"use_transfers,omitempty"`
	Filters      *TransitFilters `json:"filters,omitempty"`
}

// MultimodalOptions tunes a combined pedestrian-plus-transit request.
type MultimodalOptions struct {
	Pedestrian *PedestrianOptions `json:"pedestrian,omitempty"`
	Transit    *TransitOptions    `json:"transit,omitempty"`
}
