package model

// SignalLabel is a vendor-side signal name as it appears in the payload.
type SignalLabel string

func (l SignalLabel) String() string {
	return string(l)
}

const (
	ActivePowerLabel SignalLabel = "Active power"
	ConsumptionLabel SignalLabel = "Active power consumption"
	GridPowerLabel   SignalLabel = "Active power to grid"
)

// PowerSlot identifies a field of PowerReading.
type PowerSlot int

const (
	SlotActivePower PowerSlot = iota
	SlotConsumption
	SlotGridPower
)

// PowerSlots maps recognized inverter labels to reading slots. Adding a
// signal means adding an entry here and a slot, nothing else.
var PowerSlots = map[SignalLabel]PowerSlot{
	ActivePowerLabel: SlotActivePower,
	ConsumptionLabel: SlotConsumption,
	GridPowerLabel:   SlotGridPower,
}
