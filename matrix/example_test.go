// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/linsys/matrix"
)

// ExampleLU factors a matrix whose leading entry is zero; partial pivoting swaps rows.
func ExampleLU() {
	a, _ := matrix.NewDenseFromRows([][]float64{
		{0, 2},
		{3, 1},
	})
	res, err := matrix.LU(a)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("perm:", res.Perm)
	fmt.Print(res.U)
	// Output:
	// perm: [1 0]
	// [3, 1]
	// [0, 2]
}
