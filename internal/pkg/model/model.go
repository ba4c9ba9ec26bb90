package model

import "time"

// RealtimeResponse is the envelope returned by the vendor's
// device-realtime-data endpoint.
type RealtimeResponse struct {
	BuildCode string        `json:"build_code"`
	Success   bool          `json:"success"`
	FailCode  int           `json:"failCode"`
	Data      []DeviceGroup `json:"data"`
}

// DeviceGroup carries one block of signals. The vendor attaches more fields
// per group (group names, access models) which we do not consume.
type DeviceGroup struct {
	Signals []Signal `json:"signals"`
}

// Signal is one named measurement within a group. Names repeat across groups.
type Signal struct {
	Name       string `json:"name"`
	RealValue  string `json:"realValue"`
	Unit       string `json:"unit"`
	Value      string `json:"value"`
	LatestTime int64  `json:"latestTime"`
}

// PowerReading is the inverter power triple, in watts.
type PowerReading struct {
	ActivePower float64
	Consumption float64
	GridPower   float64
}

// Set fills the reading field the given slot maps to.
func (r *PowerReading) Set(slot PowerSlot, watts float64) {
	switch slot {
	case SlotActivePower:
		r.ActivePower = watts
	case SlotConsumption:
		r.Consumption = watts
	case SlotGridPower:
		r.GridPower = watts
	}
}

// Reading is a normalized datapoint handed to the registered publishers.
type Reading struct {
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit_of_measurement"`
	Timestamp  time.Time `json:"timestamp"`
}
