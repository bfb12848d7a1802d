package matrix

import (
	"fmt"
	"io"

	"github.com/edp1096/sparse"
)

// CircuitMatrix is a complex MNA system over sparse.Matrix. Rows and columns
// are 1-based; index 0 is ground and is never stored.
type CircuitMatrix struct {
	Size         int
	matrix       *sparse.Matrix
	rhs          []float64
	rhsImag      []float64
	solution     []float64
	solutionImag []float64
	config       *sparse.Configuration
}

func NewMatrix(size int) (*CircuitMatrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("matrix size must be positive, got %d", size)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &CircuitMatrix{
		Size:         size,
		matrix:       mat,
		rhs:          make([]float64, size+1),
		rhsImag:      make([]float64, size+1),
		solution:     make([]float64, size+1),
		solutionImag: make([]float64, size+1),
		config:       config,
	}, nil
}

func (m *CircuitMatrix) inBounds(i, j int) bool {
	return i > 0 && j > 0 && i <= m.Size && j <= m.Size
}

func (m *CircuitMatrix) AddComplexElement(i, j int, real, imag float64) error {
	if !m.inBounds(i, j) {
		return fmt.Errorf("matrix index out of bounds (i=%d, j=%d, size=%d)", i, j, m.Size)
	}
	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real += real
	element.Imag += imag
	return nil
}

func (m *CircuitMatrix) AddComplexRHS(i int, real, imag float64) error {
	if i <= 0 || i > m.Size {
		return fmt.Errorf("rhs index out of bounds (i=%d, size=%d)", i, m.Size)
	}
	m.rhs[i] += real
	m.rhsImag[i] += imag
	return nil
}

func (m *CircuitMatrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
		m.rhsImag[i] = 0
	}
}

func (m *CircuitMatrix) Solve() error {
	var err error

	err = m.matrix.Factor()
	if err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}

	m.solution, m.solutionImag, err = m.matrix.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %v", err)
	}

	return nil
}

// ComplexSolution returns unknown i of the last solve.
func (m *CircuitMatrix) ComplexSolution(i int) complex128 {
	if i <= 0 || i > m.Size || i >= len(m.solution) || i >= len(m.solutionImag) {
		return 0
	}
	return complex(m.solution[i], m.solutionImag[i])
}

// PrintSystem writes the stamped equations, one row per unknown.
func (m *CircuitMatrix) PrintSystem(w io.Writer) {
	fmt.Fprintf(w, "Circuit equations (%dx%d):\n", m.Size, m.Size)
	for i := 1; i <= m.Size; i++ {
		fmt.Fprintf(w, "Equation %d:", i)
		for j := 1; j <= m.Size; j++ {
			element := m.matrix.GetElement(int64(i), int64(j))
			if element.Real != 0 || element.Imag != 0 {
				fmt.Fprintf(w, "  (%g + j%g)*x%d", element.Real, element.Imag, j)
			}
		}
		fmt.Fprintf(w, " = %g + j%g\n", m.rhs[i], m.rhsImag[i])
	}
}

func (m *CircuitMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
