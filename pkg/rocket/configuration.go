package rocket

import (
	"github.com/google/uuid"
)

// Motor is the motor loaded into a mount for one flight configuration.
type Motor struct {
	Designation string
	Length      float64
	Diameter    float64
}

// FlightConfiguration is one buildable variant of a rocket: which stages fly
// and which motor sits in each mount.
type FlightConfiguration struct {
	ID   string
	Name string

	rocket       *Component
	activeStages map[int]bool
	motors       map[uuid.UUID]Motor
}

// NewFlightConfiguration returns a configuration of root with every stage
// active and no motors.
func NewFlightConfiguration(root *Component, id, name string) *FlightConfiguration {
	return &FlightConfiguration{
		ID:     id,
		Name:   name,
		rocket: root,
		motors: make(map[uuid.UUID]Motor),
	}
}

// Rocket returns the root component.
func (f *FlightConfiguration) Rocket() *Component {
	return f.rocket
}

// SetActiveStages restricts the configuration to the given stage numbers.
// Passing none makes every stage active again.
func (f *FlightConfiguration) SetActiveStages(stages ...int) {
	if len(stages) == 0 {
		f.activeStages = nil
		return
	}
	f.activeStages = make(map[int]bool, len(stages))
	for _, s := range stages {
		f.activeStages[s] = true
	}
}

// IsStageActive reports whether stage number n flies in this configuration.
func (f *FlightConfiguration) IsStageActive(n int) bool {
	if f.activeStages == nil {
		return true
	}
	return f.activeStages[n]
}

// IsComponentActive reports whether c belongs to this rocket and its stage is
// active. Components outside any stage are always active.
func (f *FlightConfiguration) IsComponentActive(c *Component) bool {
	if c.Root() != f.rocket {
		return false
	}
	n := c.StageNumber()
	if n < 0 {
		return true
	}
	return f.IsStageActive(n)
}

// SetMotor loads motor into mount.
func (f *FlightConfiguration) SetMotor(mount *Component, motor Motor) {
	f.motors[mount.ID] = motor
}

// MotorFor returns the motor loaded into mount, if any.
func (f *FlightConfiguration) MotorFor(mount *Component) (Motor, bool) {
	motor, ok := f.motors[mount.ID]
	return motor, ok
}

// Length returns the stacked length of the rocket.
func (f *FlightConfiguration) Length() float64 {
	return f.rocket.AxialLength()
}
