package sbol

// Namespace is the SBOL 2 vocabulary namespace. Enumerated values below are
// terms in it.
const Namespace = "http://sbols.org/v2#"

// Direction says whether a FunctionalComponent is an input, output, both or
// neither of its ModuleDefinition.
type Direction string

const (
	DirectionIn    Direction = Namespace + "in"
	DirectionOut   Direction = Namespace + "out"
	DirectionInOut Direction = Namespace + "inout"
	DirectionNone  Direction = Namespace + "none"
)

// Valid reports whether d is one of the four SBOL directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionIn, DirectionOut, DirectionInOut, DirectionNone:
		return true
	}
	return false
}

// Access says whether a component instance may be referenced from outside
// its definition.
type Access string

const (
	AccessPublic  Access = Namespace + "public"
	AccessPrivate Access = Namespace + "private"
)

// Valid reports whether a is public or private.
func (a Access) Valid() bool {
	return a == AccessPublic || a == AccessPrivate
}

// Restriction is the relation a SequenceConstraint places between its
// subject and object.
type Restriction string

const (
	RestrictionPrecedes              Restriction = Namespace + "precedes"
	RestrictionSameOrientationAs     Restriction = Namespace + "sameOrientationAs"
	RestrictionOppositeOrientationAs Restriction = Namespace + "oppositeOrientationAs"
	RestrictionDifferentFrom         Restriction = Namespace + "differentFrom"
)

// Valid reports whether r is a known restriction.
func (r Restriction) Valid() bool {
	switch r {
	case RestrictionPrecedes, RestrictionSameOrientationAs,
		RestrictionOppositeOrientationAs, RestrictionDifferentFrom:
		return true
	}
	return false
}

// Refinement decides which side of a Mapping wins when the two are merged.
type Refinement string

const (
	RefinementUseRemote       Refinement = Namespace + "useRemote"
	RefinementUseLocal        Refinement = Namespace + "useLocal"
	RefinementVerifyIdentical Refinement = Namespace + "verifyIdentical"
	RefinementMerge           Refinement = Namespace + "merge"
)

// Valid reports whether r is a known refinement.
func (r Refinement) Valid() bool {
	switch r {
	case RefinementUseRemote, RefinementUseLocal, RefinementVerifyIdentical, RefinementMerge:
		return true
	}
	return false
}
