package device

import (
	"github.com/edp1096/toy-xfmr/pkg/matrix"
)

// Device is an element stamped into the complex MNA system.
type Device interface {
	GetName() string
	GetType() string
	GetNodeNames() []string
	GetNodes() []int
	Stamp(matrix matrix.DeviceMatrix) error
	SetNodes(nodes []int)
}

// BranchDevice carries its own current as an extra unknown.
type BranchDevice interface {
	Device
	SetBranchIndex(idx int)
	BranchIndex() int
}

type BaseDevice struct {
	Name      string
	Nodes     []int
	NodeNames []string
}

func (d *BaseDevice) GetName() string {
	return d.Name
}

func (d *BaseDevice) GetNodes() []int {
	return d.Nodes
}

func (d *BaseDevice) GetNodeNames() []string {
	return d.NodeNames
}

func (d *BaseDevice) SetNodes(nodes []int) {
	d.Nodes = nodes
}

func newBaseDevice(name string, nodeNames []string) BaseDevice {
	return BaseDevice{
		Name:      name,
		Nodes:     make([]int, len(nodeNames)),
		NodeNames: nodeNames,
	}
}

// stampBranch writes the incidence of a branch current flowing n1 -> n2.
func stampBranch(m matrix.DeviceMatrix, n1, n2, b int) error {
	if n1 != 0 {
		if err := m.AddComplexElement(n1, b, 1, 0); err != nil {
			return err
		}
		if err := m.AddComplexElement(b, n1, 1, 0); err != nil {
			return err
		}
	}
	if n2 != 0 {
		if err := m.AddComplexElement(n2, b, -1, 0); err != nil {
			return err
		}
		if err := m.AddComplexElement(b, n2, -1, 0); err != nil {
			return err
		}
	}
	return nil
}
