package device

import (
	"fmt"

	"github.com/edp1096/toy-xfmr/pkg/matrix"
)

// Admittance is a two-terminal element Y = G + jB. The core-loss and
// magnetizing branch and the load are stamped this way.
type Admittance struct {
	BaseDevice
	Value complex128
}

func NewAdmittance(name string, nodeNames []string, y complex128) *Admittance {
	return &Admittance{BaseDevice: newBaseDevice(name, nodeNames), Value: y}
}

func (a *Admittance) GetType() string { return "Y" }

func (a *Admittance) Stamp(matrix matrix.DeviceMatrix) error {
	if len(a.Nodes) != 2 {
		return fmt.Errorf("admittance %s: requires exactly 2 nodes", a.Name)
	}

	n1, n2 := a.Nodes[0], a.Nodes[1]
	g, b := real(a.Value), imag(a.Value)

	if n1 != 0 {
		if err := matrix.AddComplexElement(n1, n1, g, b); err != nil {
			return err
		}
		if n2 != 0 {
			if err := matrix.AddComplexElement(n1, n2, -g, -b); err != nil {
				return err
			}
		}
	}
	if n2 != 0 {
		if n1 != 0 {
			if err := matrix.AddComplexElement(n2, n1, -g, -b); err != nil {
				return err
			}
		}
		if err := matrix.AddComplexElement(n2, n2, g, b); err != nil {
			return err
		}
	}

	return nil
}
