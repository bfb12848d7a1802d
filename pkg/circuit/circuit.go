package circuit

import (
	"fmt"

	"github.com/edp1096/toy-xfmr/pkg/device"
	"github.com/edp1096/toy-xfmr/pkg/matrix"
)

// Element describes one part before it is bound to matrix indices.
// Type is "V" (source), "Z" (series impedance) or "Y" (shunt admittance).
type Element struct {
	Type  string
	Name  string
	Nodes []string
	Value complex128
}

type Circuit struct {
	name      string
	nodeMap   map[string]int
	branchMap map[string]int
	devices   []device.Device
	numNodes  int
	matrix    *matrix.CircuitMatrix
}

func New(name string) *Circuit {
	return &Circuit{
		name:      name,
		nodeMap:   make(map[string]int),
		branchMap: make(map[string]int),
		devices:   make([]device.Device, 0),
	}
}

// Build runs the mapping, matrix creation and device setup in order.
func Build(name string, elements []Element) (*Circuit, error) {
	c := New(name)
	if err := c.AssignNodeBranchMaps(elements); err != nil {
		return nil, err
	}
	if err := c.CreateMatrix(); err != nil {
		return nil, err
	}
	if err := c.SetupDevices(elements); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

func isGround(node string) bool {
	return node == "0" || node == "gnd"
}

func (c *Circuit) AssignNodeBranchMaps(elements []Element) error {
	for _, elem := range elements {
		if len(elem.Nodes) != 2 {
			return fmt.Errorf("element %s: requires exactly 2 nodes, got %d", elem.Name, len(elem.Nodes))
		}
		for _, nodeName := range elem.Nodes {
			if isGround(nodeName) {
				continue
			}
			if _, exists := c.nodeMap[nodeName]; !exists {
				c.nodeMap[nodeName] = len(c.nodeMap) + 1
			}
		}
	}

	branchStart := len(c.nodeMap) + 1
	for _, elem := range elements {
		if elem.Type != "V" && elem.Type != "Z" {
			continue
		}
		if _, exists := c.branchMap[elem.Name]; exists {
			return fmt.Errorf("duplicate branch element %s", elem.Name)
		}
		c.branchMap[elem.Name] = branchStart
		branchStart++
	}

	c.numNodes = len(c.nodeMap)
	return nil
}

func (c *Circuit) CreateMatrix() error {
	mat, err := matrix.NewMatrix(len(c.nodeMap) + len(c.branchMap))
	if err != nil {
		return err
	}
	c.matrix = mat
	return nil
}

func createDevice(elem Element) (device.Device, error) {
	switch elem.Type {
	case "V":
		return device.NewVoltageSource(elem.Name, elem.Nodes, elem.Value), nil
	case "Z":
		return device.NewImpedance(elem.Name, elem.Nodes, elem.Value), nil
	case "Y":
		return device.NewAdmittance(elem.Name, elem.Nodes, elem.Value), nil
	}
	return nil, fmt.Errorf("unsupported element type %q", elem.Type)
}

func (c *Circuit) SetupDevices(elements []Element) error {
	for _, elem := range elements {
		dev, err := createDevice(elem)
		if err != nil {
			return fmt.Errorf("creating device %s: %v", elem.Name, err)
		}

		nodeIndices := make([]int, len(elem.Nodes))
		for i, nodeName := range elem.Nodes {
			if isGround(nodeName) {
				continue
			}
			nodeIndices[i] = c.nodeMap[nodeName]
		}
		dev.SetNodes(nodeIndices)

		if b, ok := dev.(device.BranchDevice); ok {
			b.SetBranchIndex(c.branchMap[elem.Name])
		}

		c.devices = append(c.devices, dev)
	}
	return nil
}

func (c *Circuit) Stamp() error {
	for _, dev := range c.devices {
		if err := dev.Stamp(c.matrix); err != nil {
			return fmt.Errorf("stamping device %s: %v", dev.GetName(), err)
		}
	}
	return nil
}

// Solve restamps every device and solves the system.
func (c *Circuit) Solve() error {
	if c.matrix == nil {
		return fmt.Errorf("circuit %s: matrix not created", c.name)
	}
	c.matrix.Clear()
	if err := c.Stamp(); err != nil {
		return err
	}
	return c.matrix.Solve()
}

func (c *Circuit) GetMatrix() *matrix.CircuitMatrix {
	return c.matrix
}

func (c *Circuit) GetNodeMap() map[string]int {
	return c.nodeMap
}

func (c *Circuit) GetBranchMap() map[string]int {
	return c.branchMap
}

func (c *Circuit) GetDevices() []device.Device {
	return c.devices
}

func (c *Circuit) nodeVoltage(idx int) complex128 {
	if idx <= 0 {
		return 0
	}
	return c.matrix.ComplexSolution(idx)
}

// NodeVoltage returns the solved voltage at a named node; ground is 0.
func (c *Circuit) NodeVoltage(name string) complex128 {
	if isGround(name) {
		return 0
	}
	return c.nodeVoltage(c.nodeMap[name])
}

// GetSolution maps V(node) and I(element) to phasors. Currents flow from the
// element's first node to its second; a source reports the current it
// delivers.
func (c *Circuit) GetSolution() map[string]complex128 {
	solution := make(map[string]complex128)

	for name, idx := range c.nodeMap {
		solution[fmt.Sprintf("V(%s)", name)] = c.nodeVoltage(idx)
	}

	for _, dev := range c.devices {
		key := fmt.Sprintf("I(%s)", dev.GetName())
		switch d := dev.(type) {
		case *device.VoltageSource:
			solution[key] = -c.matrix.ComplexSolution(d.BranchIndex())
		case *device.Impedance:
			solution[key] = c.matrix.ComplexSolution(d.BranchIndex())
		case *device.Admittance:
			nodes := d.GetNodes()
			solution[key] = d.Value * (c.nodeVoltage(nodes[0]) - c.nodeVoltage(nodes[1]))
		}
	}

	return solution
}

func (c *Circuit) Destroy() {
	if c.matrix != nil {
		c.matrix.Destroy()
	}
}

func (c *Circuit) Name() string {
	return c.name
}

func (c *Circuit) GetNumNodes() int {
	return c.numNodes
}
