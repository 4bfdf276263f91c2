// Package symbols holds the two auxiliary tables the compiler
// accumulates while it emits code: declared variables (with an optional
// compile-time initial value) and the set of distinct integer constants
// referenced in instruction position.
//
// Both tables remember the order identifiers/constants were first seen,
// so that the finalizer's trailing DAT section is reproducible for a
// given input.
package symbols

// Vars is the variable table: identifier -> initial value, in
// first-insertion order.
type Vars struct {
	values map[string]int
	order  []string
}

// NewVars returns an empty variable table.
func NewVars() *Vars {
	return &Vars{values: make(map[string]int)}
}

// Has reports whether name has already been declared.
func (v *Vars) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Declare records name with the given initial value if it isn't already
// declared. Redeclaring an existing name is a no-op: the first
// declaration's initial value wins.
func (v *Vars) Declare(name string, initial int) {
	if v.Has(name) {
		return
	}
	v.values[name] = initial
	v.order = append(v.order, name)
}

// Set records name with the given value, declaring it if new and
// overwriting the recorded value if it already exists.
func (v *Vars) Set(name string, value int) {
	if !v.Has(name) {
		v.order = append(v.order, name)
	}
	v.values[name] = value
}

// Names returns the declared variable names in first-insertion order.
func (v *Vars) Names() []string {
	return v.order
}

// Value returns the initial value recorded for name.
func (v *Vars) Value(name string) int {
	return v.values[name]
}

// Consts is the set of distinct integers referenced in instruction
// position, in first-insertion order. The integer 0 is always present
// (the LMC label-carries-no-instruction fix-up needs a const_0 to
// attach the endif fallthrough label to).
type Consts struct {
	seen  map[int]bool
	order []int
}

// NewConsts returns a constant set seeded with 0.
func NewConsts() *Consts {
	c := &Consts{seen: make(map[int]bool)}
	c.Add(0)
	return c
}

// Add records n in the set if it isn't already present.
func (c *Consts) Add(n int) {
	if c.seen[n] {
		return
	}
	c.seen[n] = true
	c.order = append(c.order, n)
}

// Values returns the distinct constants in first-insertion order.
func (c *Consts) Values() []int {
	return c.order
}
