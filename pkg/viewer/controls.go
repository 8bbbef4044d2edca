package viewer

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
)

// Command is a discrete control-panel edit.
type Command int

const (
	SelectX Command = iota
	SelectY
	SelectZ
	SliceForward
	SliceBack
	ExtentGrow
	ExtentShrink
	RequestReset
	Snapshot
)

func (c Command) String() string {
	switch c {
	case SelectX:
		return "select-x"
	case SelectY:
		return "select-y"
	case SelectZ:
		return "select-z"
	case SliceForward:
		return "slice-forward"
	case SliceBack:
		return "slice-back"
	case ExtentGrow:
		return "extent-grow"
	case ExtentShrink:
		return "extent-shrink"
	case RequestReset:
		return "reset"
	case Snapshot:
		return "snapshot"
	}
	return "unknown"
}

// Controls applies panel commands to a ViewerState. Slice and extent edits
// act on the selected axis.
type Controls struct {
	SliceStep  float64
	ExtentStep float64

	// OnSnapshot is called with the current slice position by Snapshot.
	OnSnapshot func(slice r3.Vec) error

	axis models.Axis
	log  *logrus.Entry
}

// NewControls returns controls acting on the z axis.
func NewControls(sliceStep, extentStep float64) *Controls {
	return &Controls{
		SliceStep:  sliceStep,
		ExtentStep: extentStep,
		axis:       models.AxisZ,
		log:        logrus.WithField("component", "controls"),
	}
}

// Axis returns the selected axis.
func (c *Controls) Axis() models.Axis {
	return c.axis
}

// Apply runs cmd against s.
func (c *Controls) Apply(s *ViewerState, cmd Command) {
	switch cmd {
	case SelectX:
		c.axis = models.AxisX
	case SelectY:
		c.axis = models.AxisY
	case SelectZ:
		c.axis = models.AxisZ
	case SliceForward, SliceBack:
		step := c.SliceStep
		if cmd == SliceBack {
			step = -step
		}
		cur := models.Component(s.Slice(), c.axis)
		s.SetSlice(models.WithComponent(s.Slice(), c.axis, cur+step))
	case ExtentGrow, ExtentShrink:
		step := c.ExtentStep
		if cmd == ExtentShrink {
			step = -step
		}
		cur := models.Component(s.Extent(), c.axis)
		if err := s.SetExtent(models.WithComponent(s.Extent(), c.axis, cur+step)); err != nil {
			c.log.WithError(err).Warn("extent edit rejected")
		}
	case RequestReset:
		s.RequestReset()
	case Snapshot:
		if c.OnSnapshot == nil {
			return
		}
		if err := c.OnSnapshot(s.Slice()); err != nil {
			c.log.WithError(err).Error("snapshot failed")
		}
	}
}
