package device

import (
	"fmt"

	"github.com/edp1096/toy-xfmr/pkg/matrix"
)

// Impedance is a series element Z = R + jX written in branch form,
// V(n1) − V(n2) − Z·I = 0, so Z = 0 is a plain short.
type Impedance struct {
	BaseDevice
	Value     complex128
	branchIdx int
}

func NewImpedance(name string, nodeNames []string, z complex128) *Impedance {
	return &Impedance{BaseDevice: newBaseDevice(name, nodeNames), Value: z}
}

func (z *Impedance) GetType() string { return "Z" }

func (z *Impedance) SetBranchIndex(idx int) { z.branchIdx = idx }

func (z *Impedance) BranchIndex() int { return z.branchIdx }

func (z *Impedance) Stamp(matrix matrix.DeviceMatrix) error {
	if len(z.Nodes) != 2 {
		return fmt.Errorf("impedance %s: requires exactly 2 nodes", z.Name)
	}
	if z.branchIdx <= 0 {
		return fmt.Errorf("impedance %s: branch index not assigned", z.Name)
	}

	if err := stampBranch(matrix, z.Nodes[0], z.Nodes[1], z.branchIdx); err != nil {
		return err
	}
	return matrix.AddComplexElement(z.branchIdx, z.branchIdx, -real(z.Value), -imag(z.Value))
}
