// Package rigid implements wall-bounded circular bodies and the pairwise
// impulse resolver that keeps them from interpenetrating.
//
// Coordinates are screen oriented: +y points down and the floor is at
// y = Height. A step is integrate, reflect off walls, then resolve pairs:
//
//	st, _ := rigid.NewStepper(env, integrators.NewSemiImplicitEuler())
//	for _, b := range bodies {
//	    st.Step(b, dt)
//	}
//	n := resolver.Resolve(bodies)
//	st.ClampAll(bodies)
package rigid
