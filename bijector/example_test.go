package bijector_test

import (
	"fmt"

	"github.com/katalvlaran/nbc/bijector"
	"github.com/katalvlaran/nbc/ndarray"
)

// ExampleChain demonstrates the classic affine transform loc + scale·x:
// the scale runs first on the forward pass, the shift contributes nothing
// to the log-det-Jacobian, and the inverse undoes both stages exactly.
func ExampleChain() {
	// 1) Build the stages: a diagonal scale and a shift of ℝ².
	scale, _ := bijector.ScaleDiag(ndarray.FromVector([]float64{2, 4}))
	shift, _ := bijector.NewShift(ndarray.FromVector([]float64{10, 10}))

	// 2) Compose outer∘inner: NewChain(shift, scale) applies scale first.
	affine, _ := bijector.NewChain(shift, scale)

	// 3) Forward, log-det and round-trip.
	x := ndarray.FromVector([]float64{1, 1})
	y, _ := affine.Forward(x)
	ld, _ := affine.ForwardLogDetJacobian(x)
	back, _ := affine.Inverse(y)

	v, _ := ld.Item()
	fmt.Println("forward:", y.Data())
	fmt.Printf("logDetJacobian: %.4f\n", v) // log(2) + log(4)
	fmt.Println("round-trip:", back.Data())
	// Output:
	// forward: [12 14]
	// logDetJacobian: 2.0794
	// round-trip: [1 1]
}
