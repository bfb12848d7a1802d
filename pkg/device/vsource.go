package device

import (
	"fmt"

	"github.com/edp1096/toy-xfmr/pkg/matrix"
)

// VoltageSource is an ideal sinusoidal source given as a phasor. Its branch
// current is positive flowing into the + node through the source, so the
// current it delivers is the negated branch value.
type VoltageSource struct {
	BaseDevice
	Value     complex128
	branchIdx int
}

func NewVoltageSource(name string, nodeNames []string, v complex128) *VoltageSource {
	return &VoltageSource{BaseDevice: newBaseDevice(name, nodeNames), Value: v}
}

func (v *VoltageSource) GetType() string { return "V" }

func (v *VoltageSource) SetBranchIndex(idx int) { v.branchIdx = idx }

func (v *VoltageSource) BranchIndex() int { return v.branchIdx }

func (v *VoltageSource) Stamp(matrix matrix.DeviceMatrix) error {
	if len(v.Nodes) != 2 {
		return fmt.Errorf("voltage source %s: requires exactly 2 nodes", v.Name)
	}
	if v.branchIdx <= 0 {
		return fmt.Errorf("voltage source %s: branch index not assigned", v.Name)
	}

	if err := stampBranch(matrix, v.Nodes[0], v.Nodes[1], v.branchIdx); err != nil {
		return err
	}
	return matrix.AddComplexRHS(v.branchIdx, real(v.Value), imag(v.Value))
}
