// Package physics provides the Lorenz system as a [dynamo.System].
//
// [Field] is the pure vector field
//
//	dx/dt = sigma*(y - x)
//	dy/dt = x*(rho - z) - y
//	dz/dt = x*y - beta*z
//
// and [Lorenz] binds a [Params] value to it so solvers can call it through
// the System interface. [Lorenz] also implements [dynamo.Configurable] for
// parameter overrides by name.
//
// The field contracts phase-space volume at the constant rate returned by
// [Params.Divergence]:
//
//	p := physics.DefaultParams()
//	fmt.Println(p.Divergence()) // -13.666...
package physics
