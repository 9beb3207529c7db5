// Package costing describes the travel-mode cost models understood by the
// routing engine and their tuning options. The structs here mirror the
// engine's costing_options wire format, so they marshal straight into an
// engine request.
package costing

// Model names a travel-mode cost model.
type Model string

const (
	Auto         Model = "auto"
	Bicycle      Model = "bicycle"
	Bus          Model = "bus"
	Bikeshare    Model = "bikeshare"
	Truck        Model = "truck"
	Taxi         Model = "taxi"
	MotorScooter Model = "motor_scooter"
	Motorcycle   Model = "motorcycle"
	Multimodal   Model = "multimodal"
	Pedestrian   Model = "pedestrian"
)

// Valid reports whether m is a model the engine accepts.
func (m Model) Valid() bool {
	switch m {
	case Auto, Bicycle, Bus, Bikeshare, Truck, Taxi,
		MotorScooter, Motorcycle, Multimodal, Pedestrian:
		return true
	}
	return false
}

func (m Model) String() string { return string(m) }

// Options carries the tuning parameters for a request, keyed by model name
// the way the engine expects them. Bus and taxi share the auto parameter
// set; bikeshare shares the bicycle one. Only the entry matching the
// request's model is consulted by the engine.
type Options struct {
	Auto         *AutoOptions         `json:"auto,omitempty"`
	Bicycle      *BicycleOptions      `json:"bicycle,omitempty"`
	Bus          *AutoOptions         `json:"bus,omitempty"`
	Bikeshare    *BicycleOptions      `json:"bikeshare,omitempty"`
	Truck        *TruckOptions        `json:"truck,omitempty"`
	Taxi         *AutoOptions         `json:"taxi,omitempty"`
	MotorScooter *MotorScooterOptions `json:"motor_scooter,omitempty"`
	Motorcycle   *MotorcycleOptions   `json:"motorcycle,omitempty"`
	Multimodal   *MultimodalOptions   `json:"multimodal,omitempty"`
	Pedestrian   *PedestrianOptions   `json:"pedestrian,omitempty"`
}
