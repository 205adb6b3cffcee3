package catalog

// HardwareID identifies a piece of workstation hardware
type HardwareID string

// HardwareClass decides which quantity a hardware multiplier applies to
type HardwareClass string

const (
	HardwareKeyboard HardwareClass = "KEYBOARD" // manual input power
	HardwareChair    HardwareClass = "CHAIR"    // burnout strain per input
	HardwareMonitor  HardwareClass = "MONITOR"  // global passive production
)

type Hardware struct {
	ID         HardwareID
	Name       string
	Class      HardwareClass
	Cost       float64
	Multiplier float64
}

var defaultHardware = []Hardware{
	{ID: "mech_keyboard_v1", Name: "Basic Mechanical", Class: HardwareKeyboard, Cost: 500, Multiplier: 1.2},
	{ID: "ergo_chair_v1", Name: "Office Chair", Class: HardwareChair, Cost: 1000, Multiplier: 0.9},
	{ID: "monitor_dual", Name: "Dual Monitors", Class: HardwareMonitor, Cost: 2500, Multiplier: 1.15},
	{ID: "mech_keyboard_v2", Name: "Custom 60% Keeb", Class: HardwareKeyboard, Cost: 5000, Multiplier: 1.5},
	{ID: "ergo_chair_v2", Name: "Herman Miller", Class: HardwareChair, Cost: 10000, Multiplier: 0.5},
}
